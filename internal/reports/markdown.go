package reports

import (
	"fmt"
	"strings"
)

// FormatMonthlyMarkdown renders a monthly report as Markdown.
func FormatMonthlyMarkdown(r *MonthlyReport) string {
	var b strings.Builder
	s := r.Summary

	fmt.Fprintf(&b, "# Emotion report: %s %d\n\n", s.Month, s.Year)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Days recorded:** %d / %d\n", s.Count, s.DaysInMonth)
	fmt.Fprintf(&b, "- **Completion:** %.1f%%\n", s.CompletionRate)
	if s.ModeEmotion != "" {
		fmt.Fprintf(&b, "- **Most frequent emotion:** %s\n", s.ModeEmotion)
	}
	fmt.Fprintf(&b, "- **Current streak:** %d days\n\n", r.Streak)

	if len(s.ByEmotion) > 0 {
		b.WriteString("## Emotions\n\n")
		b.WriteString("| Emotion | Days |\n|---|---|\n")
		for _, ec := range s.ByEmotion {
			fmt.Fprintf(&b, "| %s | %d |\n", ec.Emotion, ec.Count)
		}
		b.WriteString("\n")
	}

	if len(r.Days) > 0 {
		b.WriteString("## Calendar\n\n")
		for _, d := range r.Days {
			fmt.Fprintf(&b, "- **%s** (%s) %s: %s\n", d.Date, d.Weekday[:3], d.Emotion, escapeInline(d.Note))
		}
		b.WriteString("\n")
	}

	if len(r.LettersWritten) > 0 || len(r.LettersDelivered) > 0 {
		b.WriteString("## Letters\n\n")
		fmt.Fprintf(&b, "- Written this month: %d\n", len(r.LettersWritten))
		fmt.Fprintf(&b, "- Arrived this month: %d\n", len(r.LettersDelivered))
		for _, l := range r.LettersWritten {
			fmt.Fprintf(&b, "  - written %s, arrives %s\n", l.WriteDate, l.DeliveryDate)
		}
		b.WriteString("\n")
	}

	if len(r.Moods) > 0 {
		b.WriteString("## Mood notes\n\n")
		for _, m := range r.Moods {
			fmt.Fprintf(&b, "- `%s` %s\n", m.Timestamp, escapeInline(m.Text))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "_Generated %s_\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	return b.String()
}

// FormatOverviewMarkdown renders the all-time overview as Markdown.
func FormatOverviewMarkdown(o *Overview) string {
	var b strings.Builder

	b.WriteString("# Emotion overview\n\n")
	fmt.Fprintf(&b, "- **Days recorded:** %d\n", o.TotalDays)
	if o.FirstDate != "" {
		fmt.Fprintf(&b, "- **Since:** %s\n", o.FirstDate)
	}
	if o.ModeEmotion != "" {
		fmt.Fprintf(&b, "- **Most frequent emotion:** %s\n", o.ModeEmotion)
	}
	fmt.Fprintf(&b, "- **Current streak:** %d days\n", o.Streak)
	fmt.Fprintf(&b, "- **Mood notes:** %d\n", o.MoodEntries)
	fmt.Fprintf(&b, "- **Letters:** %d written, %d arrived (%d unread), %d waiting\n\n",
		o.Letters.Total, o.Letters.Delivered, o.Letters.Unread, o.Letters.Waiting)

	if len(o.Distribution) > 0 {
		b.WriteString("## Distribution\n\n")
		top := o.Distribution[0].Count
		for _, ec := range o.Distribution {
			fmt.Fprintf(&b, "- %-10s %s %d\n", ec.Emotion, Bar(ec.Count, top, 20), ec.Count)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "_Generated %s_\n", o.GeneratedAt.Format("2006-01-02 15:04"))
	return b.String()
}

// Bar renders count as a proportional bar of at most width cells.
func Bar(count, top, width int) string {
	if top <= 0 || count <= 0 {
		return ""
	}
	n := count * width / top
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func escapeInline(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
