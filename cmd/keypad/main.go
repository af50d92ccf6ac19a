package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rechner-api/internal/client"
	"rechner-api/internal/config"
	"rechner-api/internal/keypad"
	"rechner-api/internal/observability"
)

const usage = `keys: 0-9 . + - * / = C   commands: history, quit`

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}

	defaultURL := os.Getenv("RECHNER_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3000"
	}
	baseURL := flag.String("url", defaultURL, "base URL of the rechner API")
	flag.Parse()

	if err := observability.InitLogger(zapcore.WarnLevel); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	run(context.Background(), client.New(*baseURL, nil), os.Stdin, os.Stdout)
}

// run reads whitespace separated keys from in and prints the display after
// every line. Errors are shown once and never retried.
func run(ctx context.Context, c *client.Client, in io.Reader, out io.Writer) {
	state := keypad.New()

	fmt.Fprintln(out, usage)
	fmt.Fprintf(out, "[%s]\n", state.Display)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		for _, tok := range strings.Fields(scanner.Text()) {
			switch strings.ToLower(tok) {
			case "quit", "exit":
				return
			case "history":
				printHistory(ctx, c, out)
				continue
			}

			next, err := state.Press(ctx, c, tok)
			if err != nil {
				alert(out, tok, err)
				break
			}
			state = next
		}
		fmt.Fprintf(out, "[%s]\n", state.Display)
	}
}

func printHistory(ctx context.Context, c *client.Client, out io.Writer) {
	records, err := c.List(ctx)
	if err != nil {
		alert(out, "history", err)
		return
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "no Rechnungen stored")
		return
	}
	for _, r := range records {
		fmt.Fprintf(out, "#%d  %g %s %g = %g\n", r.ID, r.FirstNumber, r.Operator, r.SecondNumber, r.Result)
	}
}

func alert(out io.Writer, key string, err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(out, "! %s\n", apiErr.Message)
	case errors.Is(err, keypad.ErrInvalidKey):
		fmt.Fprintf(out, "! unknown key %q\n", key)
	default:
		observability.Logger.Warn("request failed", zap.String("key", key), zap.Error(err))
		fmt.Fprintln(out, "! Serverfehler")
	}
}
