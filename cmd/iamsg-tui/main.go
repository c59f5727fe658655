// ABOUTME: Interactive demo CLI for the iamessage client
// ABOUTME: Mints a token, drives a conversation, and streams events with colored output

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/iamessage-client/internal/client"
	"github.com/2389/iamessage-client/internal/config"
	"github.com/2389/iamessage-client/internal/conversation"
	"github.com/2389/iamessage-client/internal/stream"
	"github.com/2389/iamessage-client/internal/token"
)

func main() {
	configPath := flag.String("config", "client.yaml", "Path to client configuration file")
	conversationID := flag.String("conversation", "", "Resume an existing conversation id")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath, *conversationID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGoodbye!")
}

// session holds the live credentials and conversation the loop operates on.
type session struct {
	client         *client.Client
	accessToken    string
	lastEventID    string
	conversationID string
	conn           *stream.Connection
}

func run(ctx context.Context, configPath, conversationID string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	c, err := client.New(*cfg, client.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	cyan := color.New(color.FgCyan)
	cyan.Printf("iamsg-tui connected to %s\n", cfg.BaseURL)

	tok, err := c.Token.Create(ctx, token.CreateParams{})
	if err != nil {
		return fmt.Errorf("creating token: %w", err)
	}

	s := &session{
		client:      c,
		accessToken: tok.AccessToken,
		lastEventID: tok.LastEventID,
	}

	if conversationID != "" {
		s.conversationID = conversationID
	} else {
		s.conversationID, err = c.Conversation.Create(ctx, s.accessToken, nil)
		if err != nil {
			return fmt.Errorf("creating conversation: %w", err)
		}
	}
	cyan.Printf("conversation: %s\n", s.conversationID)

	if err := s.openStream(ctx); err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}
	defer s.conn.Close()

	fmt.Println("Type a message and press Enter. /help for commands. Ctrl+C to quit.")
	fmt.Println()

	return s.loop(ctx)
}

// openStream attaches a fresh push connection using the current cursor.
func (s *session) openStream(ctx context.Context) error {
	conn, err := s.client.Stream.CreateStream(ctx, s.accessToken, stream.Options{
		LastEventID: s.lastEventID,
		OnOpen: func() {
			color.HiBlack("[stream open]")
		},
		OnEvent: func(e stream.Event) {
			// The connection tracks the cursor; /resume reads it back.
			printEvent(e)
		},
		OnError: func(err error) {
			// No automatic reconnect happens; tell the user how to resume.
			color.Red("[stream error] %v — use /resume to reconnect", err)
		},
	})
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

func (s *session) loop(ctx context.Context) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("[%s]> ", shortID(s.conversationID))

		inputCh := make(chan string, 1)
		errCh := make(chan error, 1)

		go func() {
			if scanner.Scan() {
				inputCh <- scanner.Text()
			} else {
				if err := scanner.Err(); err != nil {
					errCh <- err
				} else {
					errCh <- io.EOF
				}
			}
		}()

		var input string
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		case input = <-inputCh:
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			done, err := s.command(ctx, input)
			if err != nil {
				color.Red("[error] %v", err)
			}
			if done {
				return nil
			}
			continue
		}

		entry, err := s.client.Conversation.SendMessage(ctx, s.accessToken, s.conversationID, conversation.SendMessageParams{
			Text: input,
		})
		if err != nil {
			color.Red("[error] %v", err)
			continue
		}
		color.HiBlack("[sent %s]", shortID(entry.ID))
	}
}

// command dispatches a slash command. Returns true when the loop should exit.
func (s *session) command(ctx context.Context, input string) (bool, error) {
	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit":
		return true, nil

	case "/help":
		printHelp()
		return false, nil

	case "/status":
		status, err := s.client.Conversation.Status(ctx, s.accessToken, s.conversationID)
		if err != nil {
			return false, err
		}
		fmt.Printf("status: %s (active: %v, as of %s)\n",
			status.Status, status.IsActive, status.LastActivityTimestamp.Format("15:04:05"))
		return false, nil

	case "/history":
		result, err := s.client.Conversation.List(ctx, s.accessToken, s.conversationID, &conversation.ListParams{
			Limit:     20,
			Direction: conversation.DirectionFromEnd,
		})
		if err != nil {
			return false, err
		}
		printHistory(result)
		return false, nil

	case "/typing":
		isTyping := arg != "off"
		return false, s.client.Conversation.SendTypingIndicator(ctx, s.accessToken, s.conversationID, isTyping)

	case "/ack":
		if arg == "" {
			return false, fmt.Errorf("usage: /ack <entry-id>")
		}
		return false, s.client.Conversation.SendReceipts(ctx, s.accessToken, s.conversationID, conversation.ReceiptParams{
			Entries: []conversation.ReceiptEntry{
				{Type: conversation.ReceiptRead, ConversationEntryID: arg},
			},
		})

	case "/refresh":
		tok, err := s.client.Token.Continue(ctx, s.accessToken)
		if err != nil {
			return false, err
		}
		s.accessToken = tok.AccessToken
		if tok.LastEventID != "" {
			s.lastEventID = tok.LastEventID
		}
		color.HiBlack("[token refreshed]")
		return false, nil

	case "/resume":
		s.conn.Close()
		s.lastEventID = s.conn.LastEventID()
		return false, s.openStream(ctx)

	case "/end":
		if err := s.client.Conversation.EndSession(ctx, s.accessToken, s.conversationID); err != nil {
			return false, err
		}
		color.HiBlack("[session ended; conversation stays open]")
		return false, nil

	case "/close":
		if err := s.client.Conversation.Close(ctx, s.accessToken, s.conversationID); err != nil {
			return false, err
		}
		color.HiBlack("[conversation closed]")
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %s (try /help)", cmd)
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  /status        Show conversation routing status")
	fmt.Println("  /history       Show the last 20 transcript entries")
	fmt.Println("  /typing [off]  Send a typing started/stopped indicator")
	fmt.Println("  /ack <id>      Send a read receipt for an entry")
	fmt.Println("  /refresh       Refresh the access token")
	fmt.Println("  /resume        Reopen the event stream from the last cursor")
	fmt.Println("  /end           End the messaging session (conversation stays open)")
	fmt.Println("  /close         Close the conversation and exit")
	fmt.Println("  /quit          Exit without closing the conversation")
}

func printEvent(e stream.Event) {
	fmt.Println()
	color.New(color.FgGreen).Printf("← %s ", e.Type)
	if e.ID != "" {
		color.HiBlack("(%s)", shortID(e.ID))
	} else {
		fmt.Println()
	}
	if e.Data != "" {
		fmt.Println(truncate(e.Data, 300))
	}
}

func printHistory(result conversation.ListResult) {
	if len(result.Entries) == 0 {
		fmt.Println("No transcript entries")
		return
	}

	fmt.Println(strings.Repeat("-", 60))
	for _, entry := range result.Entries {
		prefix := "  "
		switch entry.Sender.Type {
		case "endUser":
			prefix = color.BlueString("→ ")
		case "Agent", "Chatbot":
			prefix = color.GreenString("← ")
		}

		if entry.Type == conversation.EntryTypeMessage {
			fmt.Printf("%s%s\n", prefix, truncate(entry.Text, 200))
		} else {
			fmt.Printf("%s[%s]\n", prefix, entry.Type)
		}
	}
	fmt.Println(strings.Repeat("-", 60))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
