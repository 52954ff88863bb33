package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"urlnorm/internal/config"
	"urlnorm/internal/normalizer"

	"github.com/go-faster/jx"
	"github.com/spf13/cobra"
)

// maxLineBytes bounds a single stdin line.
const maxLineBytes = 1 << 20

// eachURL calls fn for every URL in args, or for every non-blank line of r when
// args is empty. It stops early when fn returns false.
func eachURL(r io.Reader, args []string, fn func(raw string) bool) error {
	if len(args) > 0 {
		for _, raw := range args {
			if !fn(raw) {
				return nil
			}
		}

		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !fn(line) {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}

	return nil
}

// normalizeCommand constructs the 'normalize' subcommand. Normalized URLs are
// written one per line; with --json every input produces one JSON object.
func normalizeCommand(cfg *config.Config) *cobra.Command {
	var asJSON, failFast bool

	cmd := &cobra.Command{
		Use:   "normalize [url...]",
		Short: "Normalizes the given URLs, or URLs read line by line from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := normalizer.New(normalizer.Deps{}, normalizer.NewOptions(cfg))
			if err != nil {
				return fmt.Errorf("could not create normalizer: %w", err)
			}

			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()
			e := jx.GetEncoder()
			defer jx.PutEncoder(e)

			failed := 0
			err = eachURL(cmd.InOrStdin(), args, func(raw string) bool {
				res, err := n.Normalize(cmd.Context(), raw)
				if err != nil {
					failed++
				}

				switch {
				case asJSON && err != nil:
					e.Reset()
					normalizer.BatchItem{Input: raw, Err: err}.Encode(e)
					_, _ = out.Write(append(e.Bytes(), '\n'))
				case asJSON:
					e.Reset()
					res.Encode(e)
					_, _ = out.Write(append(e.Bytes(), '\n'))
				case err != nil:
					_ = out.Flush()
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", raw, err)
				default:
					_, _ = out.WriteString(res.Normalized + "\n")
				}

				return err == nil || !failFast
			})
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d URL(s) could not be normalized", failed)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print one JSON object per URL, including its components")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first URL that cannot be normalized")

	return cmd
}
