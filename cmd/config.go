package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/startpage/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit the start page configuration",
	Long: `View and edit ~/.startpage/config.toml. Durations use Go syntax such as
"25m" or "90s"; colors are hex strings such as "#7C6FE0".`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if jsonOutput {
			values := make(map[string]string, len(config.Keys()))
			for _, k := range config.Keys() {
				values[k] = config.Get(k)
			}
			return printJSON(out, values)
		}

		for _, k := range config.Keys() {
			fmt.Fprintf(out, "%-28s %s\n", k, config.Get(k))
		}
		if n := len(app.config.Commands); n > 0 {
			fmt.Fprintf(out, "\n%d command table entries override the built-in triggers.\n", n)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Set(args[0], args[1]); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, map[string]string{"key": args[0], "value": config.Get(args[0])})
		}
		fmt.Fprintf(out, "✅ %s = %s\n", args[0], config.Get(args[0]))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
