package github

import (
	"context"
	stderrors "errors"
	"net"
	"strings"
	"time"

	"github.com/shurcooL/githubv4"

	"github.com/ghstats/ghstats/pkg/errors"
	"github.com/ghstats/ghstats/pkg/httputil"
)

// maxCalendarSpan is the longest range contributionsCollection accepts.
const maxCalendarSpan = 365 * 24 * time.Hour

type calendarQuery struct {
	User struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				TotalContributions githubv4.Int
				Weeks              []struct {
					ContributionDays []struct {
						Date              githubv4.String
						ContributionCount githubv4.Int
					}
				}
			}
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

// ContributionCalendar returns the per-day contribution counts of login
// between from and to (inclusive days). Ranges longer than a year are split
// into yearly queries since GitHub rejects longer spans. Results are cached
// per login and range.
func (c *Client) ContributionCalendar(ctx context.Context, login string, from, to time.Time) (*Calendar, error) {
	if err := errors.ValidateLogin(login); err != nil {
		return nil, err
	}
	if err := errors.ValidateDateRange(from, to); err != nil {
		return nil, err
	}

	cal := Calendar{Login: login, From: from, To: to}
	key := c.Keyer().CalendarKey(login, from, to)
	err := c.Cached(ctx, key, c.refresh, &cal, func() error {
		cal.Total, cal.Days = 0, nil
		end := to.Add(24*time.Hour - time.Second)
		for start := from; !start.After(end); {
			stop := start.Add(maxCalendarSpan - time.Second)
			if stop.After(end) {
				stop = end
			}
			if err := c.queryCalendar(ctx, login, start, stop, &cal); err != nil {
				return err
			}
			start = stop.Add(time.Second)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cal, nil
}

func (c *Client) queryCalendar(ctx context.Context, login string, from, to time.Time, cal *Calendar) error {
	vars := map[string]any{
		"login": githubv4.String(login),
		"from":  githubv4.DateTime{Time: from},
		"to":    githubv4.DateTime{Time: to},
	}

	var q calendarQuery
	err := httputil.RetryWith(ctx, c.Fetcher().Policy(), c.Fetcher().Sleeper(), func(int) error {
		q = calendarQuery{}
		if err := c.gql.Query(ctx, &q, vars); err != nil {
			if transientGraphQLError(ctx, err) {
				return &httputil.RetryableError{Err: err}
			}
			return err
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(errors.ErrCodeCanceled, err, "contribution calendar for %s", login)
		}
		return errors.Wrap(graphQLCode(err), err, "contribution calendar for %s", login)
	}

	cc := q.User.ContributionsCollection.ContributionCalendar
	cal.Total += int(cc.TotalContributions)
	for _, w := range cc.Weeks {
		for _, d := range w.ContributionDays {
			date, err := time.Parse(errors.DateLayout, string(d.Date))
			if err != nil {
				return errors.Wrap(errors.ErrCodeDecode, err, "calendar day %q", d.Date)
			}
			cal.Days = append(cal.Days, CalendarDay{Date: date, Count: int(d.ContributionCount)})
		}
	}
	return nil
}

// transientGraphQLError reports network failures and 5xx answers. The
// GraphQL client only exposes the status in its error text.
func transientGraphQLError(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "status code: 5") || strings.Contains(msg, "status code: 408")
}

func graphQLCode(err error) errors.Code {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "status code: 401"):
		return errors.ErrCodeUnauthorized
	case strings.Contains(msg, "status code: 403"):
		return errors.ErrCodeForbidden
	case strings.Contains(msg, "Could not resolve to a User"):
		return errors.ErrCodeNotFound
	case strings.Contains(msg, "status code: 5"):
		return errors.ErrCodeServer
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.ErrCodeNetwork
	}
	return errors.ErrCodeClientError
}
