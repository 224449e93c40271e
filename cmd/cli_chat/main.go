package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chat-widget/internal/config"
	"chat-widget/internal/domain"
	"chat-widget/internal/query"
	"chat-widget/internal/service"
	"chat-widget/internal/tui"
)

var (
	endpoint string
	plain    bool
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "cli_chat",
	Short: "Chat con el endpoint /api/query desde la terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if endpoint != "" {
			cfg.QueryBaseURL = endpoint
		}

		logger, err := newLogger(logFile)
		if err != nil {
			return err
		}
		defer logger.Sync()

		client := query.NewHTTPClient(cfg.QueryBaseURL, cfg.QueryTimeout(), logger)
		if plain {
			sess := service.NewChatSession("cli", client, time.Now().UTC().Add(cfg.SessionTTL()), logger)
			return chatFlow(cmd.InOrStdin(), cmd.OutOrStdout(), sess)
		}

		_, err = tea.NewProgram(tui.New(client, logger), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
		return err
	},
}

func main() {
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "", "URL base del endpoint de consultas (default QUERY_BASE_URL)")
	rootCmd.Flags().BoolVar(&plain, "plain", false, "modo linea a linea sin interfaz")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "archivo donde escribir logs")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// newLogger devuelve un logger a archivo, o uno mudo para no ensuciar la terminal.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// chatFlow lee una linea por envio y muestra la respuesta del bot antes de
// pedir la siguiente.
func chatFlow(in io.Reader, out io.Writer, sess *service.ChatSession) error {
	reader := bufio.NewReader(in)
	fmt.Fprintln(out, "---- Modo Chat (escribe 'salir' para terminar chat) ----")
	shown := 0
	for {
		fmt.Fprint(out, "Tu > ")
		text, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || text == "") {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("leer input: %w", err)
		}
		text = strings.TrimRight(text, "\r\n")
		trimmed := strings.TrimSpace(text)
		if strings.EqualFold(trimmed, "salir") || strings.EqualFold(trimmed, "exit") {
			fmt.Fprintln(out, "Saliendo del chat...")
			return nil
		}

		sess.SetDraft(text)
		if _, ok := sess.Submit(); !ok {
			continue
		}
		sess.Wait()

		msgs := sess.Snapshot().Messages
		for _, msg := range msgs[shown:] {
			if msg.Sender == domain.SenderBot {
				fmt.Fprintf(out, "Bot > %s\n", msg.Text)
			}
		}
		shown = len(msgs)
	}
}
