// Package chat contains the interactive interview command.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"steuer-chat/cmd/common"
	"steuer-chat/cmd/root"
	"steuer-chat/internal/catalog"
	"steuer-chat/internal/config"
	"steuer-chat/internal/interview"
	"steuer-chat/internal/logging"
	"steuer-chat/internal/phrasing"

	"github.com/spf13/cobra"
)

var (
	affirmatives = map[string]bool{
		"yes": true, "y": true, "ja": true, "j": true,
	}
	negatives = map[string]bool{
		"no": true, "n": true, "nein": true,
	}
)

// Cmd is the chat command that runs the interview on the terminal.
var Cmd = &cobra.Command{
	Use:   "chat",
	Short: "Run the deduction interview interactively",
	Long: `Run the deduction interview on the terminal: upload a wage tax
statement (or pass one with --input), confirm the filing year, answer
the deduction questions and receive a refund estimate.`,
	RunE: chatFunc,
}

func chatFunc(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cat, err := catalog.NewStore(cfg.Data.CatalogFile).Load()
	if err != nil {
		return fmt.Errorf("failed to load deduction catalog: %w", err)
	}

	ctx := context.Background()
	rephraser := buildRephraser(ctx, cfg)
	if closer, ok := rephraser.(*phrasing.GeminiClient); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	session := interview.New(cat, logging.NewLogrusAdapter(root.Log))

	if root.SharedFlags.Input != "" {
		data, err := common.LoadExtracted(root.SharedFlags.Input)
		if err != nil {
			return err
		}
		reply, err := session.SetExtractedData(data)
		if err != nil {
			return err
		}
		fmt.Println(reply)
	} else {
		fmt.Println(session.Prompt())
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			fmt.Println("Goodbye!")
			return nil
		}

		wasComplete := session.IsComplete
		reply, stop := handleLine(session, line)
		if session.IsComplete && !wasComplete {
			reply = rephrase(ctx, rephraser, reply)
		}
		fmt.Println(reply)
		if stop {
			return nil
		}
	}
	return scanner.Err()
}

// handleLine routes one line of user input to the step the session is
// currently in. The second return value asks the loop to stop.
func handleLine(session *interview.Session, line string) (string, bool) {
	switch session.Step {
	case interview.StepUpload:
		data, err := common.LoadExtracted(line)
		if err != nil {
			return fmt.Sprintf("I couldn't read that file (%v). Please enter the path to your wage tax statement.", err), false
		}
		reply, err := session.SetExtractedData(data)
		if err != nil {
			return err.Error(), false
		}
		return reply, false

	case interview.StepConfirm:
		word := strings.ToLower(line)
		switch {
		case affirmatives[word]:
			// A missing year comes back as a re-prompt alongside the error.
			reply, _ := session.ConfirmYear(true)
			return reply, false
		case negatives[word]:
			reply, _ := session.ConfirmYear(false)
			return reply, false
		default:
			return "Please answer yes or no: is this the year you want to file for?", false
		}

	case interview.StepQuestions:
		if session.Status == "" {
			reply, err := session.SelectEmploymentStatus(line)
			if err != nil {
				return "Sorry, I don't recognize that status. " + reply, false
			}
			return reply, false
		}
		reply, err := session.Advance(line)
		if err != nil {
			return err.Error(), false
		}
		return reply, false

	case interview.StepSummary:
		word := strings.ToLower(line)
		if affirmatives[word] {
			reply, err := session.ResetForNewYear()
			if err != nil {
				return err.Error(), false
			}
			return reply, false
		}
		return "Thanks for filing with steuer-chat. Goodbye!", true
	}
	return "", false
}

// buildRephraser picks the summary rephraser: Gemini when AI is enabled
// and reachable, otherwise the deterministic template.
func buildRephraser(ctx context.Context, cfg *config.Config) phrasing.Client {
	if !cfg.AI.Enabled {
		return phrasing.NewTemplateClient()
	}
	client, err := phrasing.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model, root.Log)
	if err != nil {
		root.Log.WithError(err).Warn("Gemini unavailable, falling back to template summaries")
		return phrasing.NewTemplateClient()
	}
	return client
}

func rephrase(ctx context.Context, client phrasing.Client, text string) string {
	out, err := client.RephraseSummary(ctx, text)
	if err != nil {
		root.Log.WithError(err).Warn("Failed to rephrase summary")
		return text
	}
	return out
}
