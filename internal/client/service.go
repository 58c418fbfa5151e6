package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"typetrivia/internal/tui"
	"typetrivia/internal/typing"
)

const (
	defaultServer      = "http://127.0.0.1:8080"
	defaultRankingSize = 10
	defaultHTTPTimeout = 10 * time.Second
)

// runTyping drives the interactive typing screen. Indirected so the command
// loop is testable without a terminal.
var runTyping = tui.Run

type Config struct {
	ServerURL    string
	RankingLimit int
	HTTPTimeout  time.Duration
	Formula      typing.ScoreFormula
}

// Run is the interactive command loop. It reads commands from in until EOF
// or the exit command.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg Config) error {
	serverURL := strings.TrimSpace(cfg.ServerURL)
	if serverURL == "" {
		serverURL = defaultServer
	}
	rankingLimit := cfg.RankingLimit
	if rankingLimit <= 0 {
		rankingLimit = defaultRankingSize
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	formula := cfg.Formula
	if formula.Mode == "" {
		formula = typing.DefaultFormula()
	}

	client, err := NewHTTPClient(serverURL, &http.Client{Timeout: timeout})
	if err != nil {
		return err
	}
	reader := bufio.NewReader(in)

	fmt.Fprintf(out, "typetrivia\nserver=%s\n\n", serverURL)
	printHelp(out)

	for {
		fmt.Fprint(out, "\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		args := strings.Fields(line)
		command := strings.ToLower(args[0])

		switch command {
		case "help":
			printHelp(out)
		case "exit":
			return nil
		case "signup":
			if err := runSignup(ctx, reader, out, client); err != nil {
				fmt.Fprintf(out, "error: %v\n", describeClientError(err, serverURL))
			}
		case "login":
			if err := runLogin(ctx, reader, out, client); err != nil {
				fmt.Fprintf(out, "error: %v\n", describeClientError(err, serverURL))
			}
		case "logout":
			if err := client.Logout(ctx); err != nil {
				fmt.Fprintf(out, "error: %v\n", describeClientError(err, serverURL))
				continue
			}
			fmt.Fprintln(out, "logged out.")
		case "whoami":
			if err := runWhoami(ctx, out, client); err != nil {
				fmt.Fprintf(out, "error: %v\n", describeClientError(err, serverURL))
			}
		case "play":
			if err := runPlay(ctx, out, client, formula); err != nil {
				fmt.Fprintf(out, "error: %v\n", describeClientError(err, serverURL))
			}
		case "ranking":
			limit, parseErr := parsePositiveLimit(args, 1, rankingLimit)
			if parseErr != nil {
				fmt.Fprintf(out, "invalid ranking limit: %v\n", parseErr)
				continue
			}
			if err := runRanking(ctx, out, client, limit); err != nil {
				fmt.Fprintf(out, "error: %v\n", describeClientError(err, serverURL))
			}
		case "history":
			if err := runHistory(ctx, out, client); err != nil {
				fmt.Fprintf(out, "error: %v\n", describeClientError(err, serverURL))
			}
		default:
			fmt.Fprintln(out, "unknown command. type 'help' for usage.")
		}
	}
}

func runSignup(ctx context.Context, reader *bufio.Reader, out io.Writer, client *HTTPClient) error {
	username, password, err := promptCredentials(reader, out)
	if err != nil {
		return err
	}
	if err := client.Signup(ctx, username, password); err != nil {
		return err
	}
	fmt.Fprintf(out, "registered %s. use 'login' to sign in.\n", username)
	return nil
}

func runLogin(ctx context.Context, reader *bufio.Reader, out io.Writer, client *HTTPClient) error {
	username, password, err := promptCredentials(reader, out)
	if err != nil {
		return err
	}
	loggedIn, err := client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "logged in as %s.\n", loggedIn)
	return nil
}

func runWhoami(ctx context.Context, out io.Writer, client *HTTPClient) error {
	username, err := client.Check(ctx)
	if err != nil {
		if isUnauthorized(err) {
			fmt.Fprintln(out, "not logged in.")
			return nil
		}
		return err
	}
	fmt.Fprintf(out, "logged in as %s.\n", username)
	return nil
}

func runPlay(ctx context.Context, out io.Writer, client *HTTPClient, formula typing.ScoreFormula) error {
	session := typing.NewSession(func(ctx context.Context) ([]typing.Prompt, error) {
		return client.FetchQuestions(ctx)
	}, formula)

	if err := session.Start(ctx); err != nil {
		if isUnauthorized(err) {
			fmt.Fprintln(out, "login first.")
			return nil
		}
		return err
	}

	abandoned, err := runTyping(session)
	if err != nil {
		return err
	}
	if abandoned {
		fmt.Fprintln(out, "session abandoned; nothing submitted.")
		return nil
	}

	summary := session.Summary()
	fmt.Fprintf(out, "\nscore=%d wpm=%.1f accuracy=%.1f%% (%d/%d chars in %ds)\n",
		summary.Score,
		summary.WPM,
		summary.Accuracy,
		summary.CorrectChars,
		summary.TotalChars,
		summary.ElapsedSeconds,
	)

	record, err := client.SubmitScore(ctx, summary)
	if err != nil {
		return fmt.Errorf("score not saved: %w", err)
	}
	fmt.Fprintf(out, "saved as record #%d.\n", record.ID)
	return nil
}

func runRanking(ctx context.Context, out io.Writer, client *HTTPClient, limit int) error {
	records, err := client.Ranking(ctx, limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No scores yet.")
		return nil
	}

	fmt.Fprintln(out, "Ranking:")
	for idx, record := range records {
		fmt.Fprintf(out, "%d. %s wpm=%.1f accuracy=%.1f%% score=%.0f\n",
			idx+1,
			record.Owner,
			record.WPM,
			record.Accuracy,
			record.Score,
		)
	}
	return nil
}

func runHistory(ctx context.Context, out io.Writer, client *HTTPClient) error {
	records, err := client.History(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No scores yet.")
		return nil
	}

	fmt.Fprintln(out, "Your scores:")
	for _, record := range records {
		fmt.Fprintf(out, "#%d wpm=%.1f accuracy=%.1f%% score=%.0f at %s\n",
			record.ID,
			record.WPM,
			record.Accuracy,
			record.Score,
			record.CreatedAt.Format(time.RFC3339),
		)
	}
	return nil
}
