package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/hirehub/internal/auth"
)

// GenSecretCommand prints a fresh value for AUTH_TOKEN_SECRET.
type GenSecretCommand struct {
	Export bool

	out io.Writer
}

func NewGenSecretCommand() *GenSecretCommand {
	return &GenSecretCommand{out: os.Stdout}
}

func (cmd *GenSecretCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("gen-secret", flag.ContinueOnError)

	fs.BoolVar(&cmd.Export, "export", false, "Print as a shell export statement")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s gen-secret [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Generate a random token signing secret.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *GenSecretCommand) Run() error {
	secret, err := auth.GenerateTokenSecret()
	if err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}

	if cmd.Export {
		_, err = fmt.Fprintf(cmd.out, "export AUTH_TOKEN_SECRET=%s\n", secret)
		return err
	}
	_, err = fmt.Fprintln(cmd.out, secret)
	return err
}
