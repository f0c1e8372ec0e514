package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mindmate.app/client/internal/archive"
	"mindmate.app/client/internal/auth"
	"mindmate.app/client/internal/chat"
	"mindmate.app/client/internal/config"
	"mindmate.app/client/internal/gateway"
	"mindmate.app/client/internal/logging"
	"mindmate.app/client/internal/ui"
)

var (
	emailFlag    string
	passwordFlag string
)

var rootCmd = &cobra.Command{
	Use:   "mindmate",
	Short: "MindMate - a supportive conversation companion in your terminal",
	Long: `MindMate is a terminal client for the MindMate conversation service.

Run without arguments to open the chat interface. Conversations are held
with a remote companion service; messages you send are screened locally for
crisis language so support resources can be shown right away.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig()
		if err := logging.Init(config.AppConfig.LogFile, config.AppConfig.LogLevel); err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		return nil
	},
	RunE: runChat,
}

func newGateway() (*gateway.Client, *auth.TokenStore, error) {
	tokens, err := auth.NewTokenStore(config.AppConfig.TokenPath)
	if err != nil {
		return nil, nil, err
	}
	gw := gateway.New(
		config.AppConfig.APIBaseURL,
		config.AppConfig.RequestTimeout,
		tokens,
		logging.L(),
	)
	return gw, tokens, nil
}

func runChat(cmd *cobra.Command, args []string) error {
	gw, tokens, err := newGateway()
	if err != nil {
		return err
	}
	if !tokens.LoggedIn() {
		fmt.Println("You are not logged in. Run 'mindmate login' (or 'mindmate register') first.")
		return nil
	}

	orch := chat.NewOrchestrator(gw, logging.L())

	// The archive is a convenience; chatting works without it.
	if store, err := archive.Open(config.AppConfig.ArchivePath); err != nil {
		logging.L().Warn("local archive unavailable", zap.Error(err))
	} else {
		defer store.Close()
		orch.SetRecorder(store)
	}

	p := tea.NewProgram(ui.New(orch), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("UI error: %w", err)
	}
	logging.Sync()
	return nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, _, err := newGateway()
		if err != nil {
			return err
		}
		email, password, err := credentials()
		if err != nil {
			return err
		}
		if err := gw.Login(context.Background(), email, password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Println("Logged in.")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, _, err := newGateway()
		if err != nil {
			return err
		}
		email, password, err := credentials()
		if err != nil {
			return err
		}
		if err := gw.Register(context.Background(), email, password); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		fmt.Println("Account created, you are logged in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens, err := auth.NewTokenStore(config.AppConfig.TokenPath)
		if err != nil {
			return err
		}
		if err := tokens.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Print archived transcripts (works offline)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.Open(config.AppConfig.ArchivePath)
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 0 {
			sessions, err := store.Sessions()
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("Nothing archived yet.")
				return nil
			}
			for _, sess := range sessions {
				title := sess.Title
				if title == "" {
					title = "New conversation"
				}
				fmt.Printf("%s  %s\n", sess.ID, title)
			}
			return nil
		}

		messages, err := store.Messages(args[0])
		if err != nil {
			return err
		}
		for _, msg := range messages {
			speaker := "You"
			if msg.Role == chat.RoleAssistant {
				speaker = "MindMate"
			}
			fmt.Printf("[%s] %s: %s\n", msg.SentAt.Format("2006-01-02 15:04"), speaker, msg.Content)
		}
		return nil
	},
}

// credentials takes the email and password from flags when given, otherwise
// prompts on stdin.
func credentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	email := emailFlag
	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		email = strings.TrimSpace(line)
	}

	password := passwordFlag
	if password == "" {
		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		password = strings.TrimSpace(line)
	}

	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required")
	}
	return email, password, nil
}

func main() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&emailFlag, "email", "", "account email")
		c.Flags().StringVar(&passwordFlag, "password", "", "account password (prompted if omitted)")
	}
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
