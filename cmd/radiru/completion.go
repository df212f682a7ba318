package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shells = []string{"bash", "zsh", "fish", "powershell"}

func newCompletionCmd() *cobra.Command {
	var shell string

	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate a shell completion script",
		Example: `  source <(radiru completion --shell bash)
  radiru completion -s zsh > "${fpath[1]}/_radiru"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch shell {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			case "":
				return usageError{fmt.Errorf("--shell is required (one of %v)", shells)}
			default:
				return usageError{fmt.Errorf("unsupported shell %q (one of %v)", shell, shells)}
			}
		},
	}

	cmd.Flags().StringVarP(&shell, "shell", "s", "", "shell: bash, zsh, fish or powershell")
	_ = cmd.RegisterFlagCompletionFunc("shell", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return shells, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
