package commands

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YaCodeDev/GoYaTgBotAPI/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotAPI/yatgmessageencoding"
)

var (
	convertFrom string
	convertTo   string
)

var convertCmd = &cobra.Command{
	Use:   "convert [text]",
	Short: "Convert markup between parse modes offline",
	Long: `convert parses markup into text and entities and renders it in another parse mode.

The text is read from the arguments, or from stdin when there are none.
--from accepts markdown or html, --to accepts html or markdownv2.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", "markdown", "source markup: markdown or html")
	convertCmd.Flags().StringVar(&convertTo, "to", "html", "target markup: html or markdownv2")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := strings.Join(args, " ")

	if len(args) == 0 {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return yaerrors.FromError(http.StatusBadRequest, err, "failed to read stdin")
		}

		input = string(raw)
	}

	out, err := convert(input, convertFrom, convertTo)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)

	return nil
}

func convert(input, from, to string) (string, yaerrors.Error) {
	var parser yatgmessageencoding.Parser

	switch strings.ToLower(from) {
	case "markdown", "md":
		parser = yatgmessageencoding.NewMarkdownEncoding()
	case "html":
		parser = yatgmessageencoding.NewHTMLEncoding()
	default:
		return "", yaerrors.FromString(http.StatusBadRequest, fmt.Sprintf("unknown source markup %q", from))
	}

	var unparser yatgmessageencoding.Unparser

	switch strings.ToLower(to) {
	case "html":
		unparser = yatgmessageencoding.NewHTMLEncoding()
	case "markdownv2", "mdv2":
		unparser = yatgmessageencoding.NewMarkdownV2Encoding()
	default:
		return "", yaerrors.FromString(http.StatusBadRequest, fmt.Sprintf("unknown target markup %q", to))
	}

	text, entities, err := parser.Parse(input)
	if err != nil {
		return "", err.Wrap("failed to parse " + from)
	}

	return unparser.Unparse(text, entities), nil
}
