package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for ghstats.

To load completions:

Bash:
  $ source <(ghstats completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ ghstats completion bash > /etc/bash_completion.d/ghstats
  # macOS:
  $ ghstats completion bash > $(brew --prefix)/etc/bash_completion.d/ghstats

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ ghstats completion zsh > "${fpath[1]}/_ghstats"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ ghstats completion fish | source

  # To load completions for each session, execute once:
  $ ghstats completion fish > ~/.config/fish/completions/ghstats.fish

PowerShell:
  PS> ghstats completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> ghstats completion powershell > ghstats.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}
