package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgclient"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmethods"
)

var setCommandsLang string

var setCommandsCmd = &cobra.Command{
	Use:   "set-commands",
	Short: "Publish the command list shown by Telegram clients",
	RunE:  runSetCommands,
}

func init() {
	setCommandsCmd.Flags().StringVar(&setCommandsLang, "lang", "", "two-letter language code of the list")
	rootCmd.AddCommand(setCommandsCmd)
}

func runSetCommands(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath, yalogger.NewDefaultLogger())
	if err != nil {
		return err
	}

	log := newLogger(cfg.LogLevel)

	client, err := yatgclient.NewClientFromConfig(cfg.clientConfig(), nil, log)
	if err != nil {
		return err
	}

	req := yatgmethods.NewSetMyCommands(botCommands().Commands()...)
	req.LanguageCode = setCommandsLang

	if err := client.SetMyCommands(cmd.Context(), req); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Published %d commands\n", len(req.Commands))

	return nil
}
