package cli

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/surlink/internal/client/models"
	"github.com/dmitrijs2005/surlink/internal/client/services"
)

// Verdict colours are the same in both themes.
var (
	PhishingColor = lipgloss.Color("#ef4444")
	SafeColor     = lipgloss.Color("#10b981")
	WarningColor  = lipgloss.Color("#f59e0b")
)

// Palette holds the theme-dependent colours.
type Palette struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	User       lipgloss.Color
}

func DarkPalette() Palette {
	return Palette{
		Foreground: lipgloss.Color("#e2e8f0"),
		Muted:      lipgloss.Color("#94a3b8"),
		Accent:     lipgloss.Color("#a5b4fc"),
		Border:     lipgloss.Color("#6366f1"),
		User:       lipgloss.Color("#cbd5e1"),
	}
}

func LightPalette() Palette {
	return Palette{
		Foreground: lipgloss.Color("#1e293b"),
		Muted:      lipgloss.Color("#64748b"),
		Accent:     lipgloss.Color("#4f46e5"),
		Border:     lipgloss.Color("#818cf8"),
		User:       lipgloss.Color("#334155"),
	}
}

func paletteFor(t models.Theme) Palette {
	if t == models.ThemeLight {
		return LightPalette()
	}
	return DarkPalette()
}

// Renderer turns domain values into styled terminal text.
type Renderer struct {
	mu      sync.RWMutex
	theme   models.Theme
	palette Palette
}

func NewRenderer(theme models.Theme) *Renderer {
	r := &Renderer{}
	r.SetTheme(theme)
	return r
}

func (r *Renderer) SetTheme(theme models.Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.theme = theme
	r.palette = paletteFor(theme)
}

func (r *Renderer) Theme() models.Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.theme
}

func (r *Renderer) pal() Palette {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.palette
}

func verdictColor(l models.Label) lipgloss.Color {
	if l.IsPhishing() {
		return PhishingColor
	}
	return SafeColor
}

const (
	phishingAdvice = "This message appears to be a phishing attempt. Be cautious and do not click on suspicious links."
	safeAdvice     = "This message appears to be safe. However, always remain vigilant with personal information."
)

// Result renders the verdict bubble.
func (r *Renderer) Result(res *models.ScanResult) string {
	p := r.pal()

	icon, advice := "✅", safeAdvice
	if res.Label.IsPhishing() {
		icon, advice = "🚨", phishingAdvice
	}

	verdict := lipgloss.NewStyle().Bold(true).Foreground(verdictColor(res.Label)).
		Render(fmt.Sprintf("%s %s", icon, res.Result))
	confidence := lipgloss.NewStyle().Foreground(p.Muted).
		Render("Confidence: " + res.Confidence)
	adviceLine := lipgloss.NewStyle().Foreground(p.Foreground).Render(advice)

	parts := []string{verdict, confidence, "", adviceLine}
	if res.HasExplanation() {
		title := lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render("Why this decision")
		body := lipgloss.NewStyle().Foreground(p.Foreground).Render(strings.TrimSpace(res.Explanation))
		block := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1).
			Render(title + "\n" + body)
		parts = append(parts, "", block)
	}
	return strings.Join(parts, "\n")
}

func (r *Renderer) ConnectionError() string {
	p := r.pal()
	title := lipgloss.NewStyle().Bold(true).Foreground(PhishingColor).Render("❌ Connection Error")
	body := lipgloss.NewStyle().Foreground(p.Muted).
		Render("Unable to connect to the AI service. Please check your internet connection and try again.")
	return title + "\n" + body
}

func (r *Renderer) UserMessage(msg string) string {
	p := r.pal()
	return lipgloss.NewStyle().Foreground(p.User).Render("you: " + msg)
}

func (r *Renderer) Typing() string {
	return lipgloss.NewStyle().Foreground(r.pal().Muted).Italic(true).Render("SurLink is analyzing...")
}

// Progress renders a ten-cell bar for pct in [0,100].
func (r *Renderer) Progress(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct / 10
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	return lipgloss.NewStyle().Foreground(r.pal().Accent).Render(fmt.Sprintf("[%s] %3d%%", bar, pct))
}

func (r *Renderer) History(entries []models.HistoryEntry) string {
	p := r.pal()
	if len(entries) == 0 {
		return lipgloss.NewStyle().Foreground(p.Muted).Render("No scans yet.")
	}

	var b strings.Builder
	for i, e := range entries {
		label := lipgloss.NewStyle().Bold(true).Foreground(verdictColor(e.Label)).Render(fmt.Sprintf("%-8s", e.Label))
		when := lipgloss.NewStyle().Foreground(p.Muted).Render(e.Timestamp.Local().Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "%2d. %s %s  %s", i+1, label, when, e.TruncatedMessage)
		if i < len(entries)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FeedbackList renders submitted feedback, oldest first.
func (r *Renderer) FeedbackList(items []models.Feedback) string {
	p := r.pal()
	muted := lipgloss.NewStyle().Foreground(p.Muted)
	if len(items) == 0 {
		return muted.Render("No feedback submitted yet.")
	}

	kind := lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	lines := make([]string, 0, len(items))
	for _, f := range items {
		head := kind.Render(fmt.Sprintf("[%s]", f.Kind)) + " " +
			muted.Render(f.SubmittedAt.Local().Format("2006-01-02 15:04"))
		lines = append(lines, head+"\n  "+strings.ReplaceAll(f.Message, "\n", "\n  "))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) Stats(s models.ScanStats, bestQuiz int) string {
	p := r.pal()
	key := lipgloss.NewStyle().Foreground(p.Muted)

	lines := []string{
		key.Render("Total scans:    ") + fmt.Sprint(s.TotalScans),
		key.Render("Phishing found: ") + lipgloss.NewStyle().Foreground(PhishingColor).Render(fmt.Sprint(s.PhishingScans)),
		key.Render("Safe messages:  ") + lipgloss.NewStyle().Foreground(SafeColor).Render(fmt.Sprint(s.SafeScans)),
	}
	if bestQuiz > 0 {
		lines = append(lines, key.Render("Best quiz:      ")+fmt.Sprintf("%d%%", bestQuiz))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) Status(st services.Status) string {
	color := WarningColor
	dot := "●"
	if st.Checked {
		if st.Online {
			color = SafeColor
		} else {
			color = PhishingColor
		}
	}
	return lipgloss.NewStyle().Foreground(color).Render(dot) + " " + st.String()
}

func (r *Renderer) Quiz(st services.QuizState) string {
	p := r.pal()
	muted := lipgloss.NewStyle().Foreground(p.Muted)

	switch st.Phase {
	case services.QuizFinished:
		lines := []string{
			lipgloss.NewStyle().Bold(true).Foreground(p.Accent).
				Render(fmt.Sprintf("Quiz complete: %d/%d (%d%%)", st.Score, st.Total, st.Percent)),
		}
		if st.Passed {
			lines = append(lines, lipgloss.NewStyle().Foreground(SafeColor).Render("Great job! You know how to spot phishing."))
		} else {
			lines = append(lines, lipgloss.NewStyle().Foreground(WarningColor).Render("Keep practicing. Review the signs of phishing and try again."))
		}
		if st.NewBest {
			lines = append(lines, fmt.Sprintf("New best score: %d%%", st.Best))
		} else if st.Best > 0 {
			lines = append(lines, muted.Render(fmt.Sprintf("Best score: %d%%", st.Best)))
		}
		lines = append(lines, muted.Render("(r)estart or (q)uit"))
		return strings.Join(lines, "\n")

	case services.QuizFeedback:
		color := PhishingColor
		if st.Correct {
			color = SafeColor
		}
		return lipgloss.NewStyle().Bold(true).Foreground(color).Render(st.Feedback) + "\n" +
			muted.Render("(n)ext or wait...")

	default:
		var b strings.Builder
		b.WriteString(muted.Render(fmt.Sprintf("Question %d of %d", st.Index+1, st.Total)))
		b.WriteByte('\n')
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(p.Foreground).Render(st.Question.Prompt))
		for i, o := range st.Question.Options {
			fmt.Fprintf(&b, "\n  %d) %s", i+1, o.Text)
		}
		b.WriteByte('\n')
		b.WriteString(muted.Render("answer 1-4, (r)estart or (q)uit"))
		return b.String()
	}
}
