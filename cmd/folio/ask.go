package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/localnerve/visionfolio/internal/seed"
	"github.com/localnerve/visionfolio/internal/services"
	"github.com/spf13/cobra"
)

var (
	apiKey string
	model  string
)

// newGenerator is swapped in tests
var newGenerator = services.NewGeminiGenerator

func buildAssistant(ctx context.Context) (*services.Assistant, error) {
	content, err := seed.NewEmbedded().Defaults(locale)
	if err != nil {
		return nil, err
	}
	key := apiKey
	if key == "" {
		key = os.Getenv("GENAI_API_KEY")
	}
	gen, err := newGenerator(ctx, key, model)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		log.Warn().Msg("no text generation key configured")
	}
	return services.NewAssistant(gen, content, log), nil
}

func addGeneratorFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Text generation key (default $GENAI_API_KEY)")
	cmd.Flags().StringVar(&model, "model", "", "Text generation model")
}

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the portfolio assistant one question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := buildAssistant(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), assistant.Reply(cmd.Context(), strings.Join(args, " ")))
			return nil
		},
	}
	addGeneratorFlags(cmd)
	return cmd
}

func newChatCmd() *cobra.Command {
	var greeting string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the portfolio assistant",
		Long:  `Read questions line by line until EOF or "exit". Each question is sent on its own.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assistant, err := buildAssistant(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			conv := services.NewConversation(assistant, greeting)
			for _, m := range conv.Transcript() {
				fmt.Fprintf(out, "%s> %s\n", m.Role, m.Text)
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "you> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "exit" || line == "quit" {
					return nil
				}
				reply, err := conv.Submit(cmd.Context(), line)
				if err != nil {
					if errors.Is(err, services.ErrBusy) {
						return err
					}
					continue
				}
				fmt.Fprintf(out, "%s> %s\n", reply.Role, reply.Text)
			}
		},
	}
	addGeneratorFlags(cmd)
	cmd.Flags().StringVar(&greeting, "greeting", "Hi! Ask me anything about this portfolio.", "First assistant line")
	return cmd
}
