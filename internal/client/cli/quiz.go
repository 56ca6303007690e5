package cli

import (
	"context"
	"strconv"
	"strings"
)

// Quiz runs the phishing awareness quiz. States are printed by the quiz
// subscriber, including those caused by the auto-advance timer.
func (a *App) Quiz(ctx context.Context) error {
	a.quiz.Restart()
	defer a.quiz.Stop()

	for ctx.Err() == nil {
		line, err := readLine(a.reader)
		if err != nil {
			return nil
		}

		switch cmd := strings.ToLower(strings.TrimSpace(line)); cmd {
		case "":
		case "q", "quit":
			return nil
		case "r", "restart":
			a.quiz.Restart()
		case "n", "next":
			a.quiz.Next()
		default:
			n, err := strconv.Atoi(cmd)
			if err != nil {
				a.println("Unknown quiz command:", cmd)
				continue
			}
			if _, err := a.quiz.Select(n - 1); err != nil {
				a.println(userMessage(err))
			}
		}
	}
	return nil
}
