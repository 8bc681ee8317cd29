package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"artimentor/internal/llm"
	"artimentor/internal/mentor"
	"artimentor/internal/roster"
	"artimentor/internal/store"
)

var chatSessionID string

var chatCmd = &cobra.Command{
	Use:   "chat [character]",
	Short: "Chat with the mentor about a character's build",
	Long: `Opens an interactive conversation with the AI mentor about one
character. The mentor sees the latest analysis and benchmark context.

Commands inside the chat:
  /new     - Start a fresh session
  /export  - Write the transcript to a Markdown file
  /quit    - Leave the chat`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatSessionID, "session", "", "Resume an existing session by id")
}

func runChat(cmd *cobra.Command, args []string) error {
	target := args[0]

	stash, err := openStash()
	if err != nil {
		return err
	}
	state := stash.Load()
	if state.UID == "" {
		return fmt.Errorf("no scan data; run: mentor scan <uid>")
	}

	table, err := roster.Reference()
	if err != nil {
		return err
	}
	records := roster.Normalize(state.Roster, table)

	char := mentor.FindCharacter(records, target)
	if char == nil {
		return fmt.Errorf("character %q not in the scanned roster; run: mentor dashboard", target)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	client, err := newLLMClient(cmd.Context(), db)
	if err != nil {
		return err
	}
	svc := mentor.NewService(client)

	session, err := resumeOrCreateSession(db, char.DisplayName)
	if err != nil {
		return err
	}

	// The mentor references the last analysis when one exists, even an
	// unstructured one.
	var rec *mentor.Recommendation
	if state.Analysis != "" {
		rec, _ = mentor.ParseRecommendation(state.Analysis)
	}

	fmt.Println(titleStyle.Render(session.Title))
	if len(session.Messages) > 0 {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("Resuming with %d earlier messages.", len(session.Messages))))
	}
	if state.Analysis == "" {
		fmt.Println(mutedStyle.Render("No analysis on file; run 'mentor analyze' first for richer answers."))
	}
	fmt.Println(mutedStyle.Render("Type /quit to leave, /new for a fresh session, /export to save."))

	reader := bufio.NewScanner(os.Stdin)
	reader.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print(headerStyle.Render("you> "))
		if !reader.Scan() {
			fmt.Println()
			return reader.Err()
		}
		input := strings.TrimSpace(reader.Text())
		if input == "" {
			continue
		}

		switch input {
		case "/quit", "/exit":
			return nil
		case "/new":
			session, err = db.CreateSession(char.DisplayName)
			if err != nil {
				return err
			}
			fmt.Println(successStyle.Render("Started " + session.Title))
			continue
		case "/export":
			path, err := exportSession(db, session.ID, "", "md")
			if err != nil {
				fmt.Println(errorStyle.Render("Export failed: " + err.Error()))
				continue
			}
			fmt.Println(successStyle.Render("Saved " + path))
			continue
		}

		history := make([]llm.Message, 0, len(session.Messages))
		for _, msg := range session.Messages {
			history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		reply, err := svc.Chat(ctx, char.DisplayName, rec, state.Context, history, input)
		cancel()
		if err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
			continue
		}

		if err := db.AppendMessage(session.ID, "user", input); err != nil {
			return err
		}
		if err := db.AppendMessage(session.ID, "assistant", reply); err != nil {
			return err
		}
		session.Messages = append(session.Messages,
			store.ChatMessage{Role: "user", Content: input},
			store.ChatMessage{Role: "assistant", Content: reply})

		fmt.Println(renderMarkdown(reply))
	}
}

// resumeOrCreateSession honors --session, otherwise resumes the most
// recently active session for the character, otherwise starts one.
func resumeOrCreateSession(db *store.LocalStore, character string) (*store.ChatSession, error) {
	if chatSessionID != "" {
		session, err := db.GetSession(chatSessionID)
		if err != nil {
			return nil, err
		}
		if session.Character != character {
			return nil, fmt.Errorf("session %s belongs to %s", session.ID, session.Character)
		}
		return session, nil
	}

	sessions, err := db.SessionsForCharacter(character)
	if err != nil {
		return nil, err
	}
	if len(sessions) > 0 {
		return db.GetSession(sessions[0].ID)
	}
	return db.CreateSession(character)
}

// exportSession writes a session transcript next to the workspace root.
func exportSession(db *store.LocalStore, sessionID, dir, format string) (string, error) {
	var content, filename string
	var err error
	switch format {
	case "json":
		content, filename, err = db.ExportJSON(sessionID)
	case "md", "":
		content, filename, err = db.ExportMarkdown(sessionID)
	default:
		return "", fmt.Errorf("unknown export format %q (want md or json)", format)
	}
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir, err = resolveWorkspace()
		if err != nil {
			return "", err
		}
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}
