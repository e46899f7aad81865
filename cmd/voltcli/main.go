// voltcli is a command-line Lightning/Bitcoin wallet over a remote payment
// processor, with a local append-only ledger of payment activity.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rmarin/voltcli/pkg/config"
	pkgerrors "github.com/rmarin/voltcli/pkg/errors"
	"github.com/rmarin/voltcli/pkg/logger"
)

var Version = "dev"

func main() {
	logg := logger.New(logger.Options{ServiceName: "voltcli"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		exitWithError(pkgerrors.Wrap(pkgerrors.CodeConfig, err, "loading configuration"))
	}

	logg = logger.New(logger.Options{
		ServiceName: "voltcli",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	app := newApp(cfg, logg)

	rootCmd := &cobra.Command{
		Use:           "voltcli",
		Short:         "Lightning wallet CLI with a local payment ledger",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		registerCmd(app),
		balanceCmd(app),
		sendCmd(app),
		receiveCmd(app),
		chargeCmd(app),
		historyCmd(app),
		detailCmd(app),
		withdrawCmd(app),
		paylinkCmd(app),
		payoutCmd(app),
	)

	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

// errorPayload is the single structured failure written to stderr. A command
// either prints its full result on stdout or this payload on stderr, never a
// mix of both.
type errorPayload struct {
	Code    pkgerrors.Code `json:"code"`
	Message string         `json:"message"`
	Details any            `json:"details,omitempty"`
}

func exitWithError(err error) {
	payload := errorPayload{
		Code:    pkgerrors.CodeInternal,
		Message: err.Error(),
	}
	if typed := pkgerrors.As(err); typed != nil {
		payload.Code = typed.Code()
		payload.Message = typed.Message()
		payload.Details = typed.Details()
	}

	encoded, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		fmt.Fprintln(os.Stderr, err)
	} else {
		fmt.Fprintln(os.Stderr, string(encoded))
	}
	os.Exit(pkgerrors.MetadataFor(payload.Code).ExitCode)
}

// printJSON writes the command result to stdout.
func printJSON(value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding result")
	}
	fmt.Println(string(encoded))
	return nil
}
