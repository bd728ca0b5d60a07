package notifier

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"SignalSentinel/internal/model"
)

// FormatSignal renders a result as an alert: the headline the bot has always
// sent followed by the rules that fired and the indicator snapshot.
func FormatSignal(result *model.SignalResult) string {
	var b strings.Builder

	b.WriteString(Headline(result))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("<b>%s</b> | %s\n", html.EscapeString(result.Symbol),
		result.EvaluatedAt.UTC().Format("2006-01-02 15:04 UTC")))

	if len(result.Fired) > 0 {
		b.WriteString(fmt.Sprintf("Rules: %s\n", strings.Join(result.Fired, " → ")))
	} else {
		b.WriteString("Rules: none\n")
	}

	b.WriteString("<pre>")
	for _, key := range model.SortedKeys(result.Snapshot) {
		b.WriteString(fmt.Sprintf("%-20s %s\n", key, result.Snapshot[key]))
	}
	b.WriteString("</pre>")
	return b.String()
}

// Headline is the one-line alert, e.g. "🚀 Signal: BUY (Strong Trend) at $64250.12".
func Headline(result *model.SignalResult) string {
	return fmt.Sprintf("🚀 Signal: %s at $%s", result.Label(),
		strconv.FormatFloat(result.LatestPrice, 'f', -1, 64))
}

// FormatHelp lists the chat commands.
func FormatHelp() string {
	var b strings.Builder
	b.WriteString("🤖 <b>SignalSentinel</b>\n\n")
	b.WriteString("/signal - evaluate now\n")
	b.WriteString("/last - show the last result\n")
	b.WriteString("/help - show this message\n")
	return b.String()
}
