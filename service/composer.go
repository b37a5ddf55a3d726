package service

import (
	"fmt"
	"strings"

	"lawgpt-backend/models"
)

// buildPrompt assembles the completion prompt from the question, the active
// filter and the retrieved documents. With no documents it falls back to a
// general-knowledge prompt so the user still gets an answer.
func buildPrompt(filter models.LawFilter, question string, docs *RetrievedDocuments) string {
	filterName := strings.ToUpper(filter.String())

	if docs.Total() == 0 {
		return fmt.Sprintf(`You are a legal assistant for KSA (Kingdom of Saudi Arabia) law, specializing in %s law.
A user asks: "%s"

No matching documents were found in the legal database for this question. Answer from general knowledge of KSA %s law, clearly state that the answer is not backed by retrieved sources, and recommend consulting with a qualified legal professional for authoritative advice.`, filterName, question, filterName)
	}

	var context strings.Builder
	fmt.Fprintf(&context, "--- Search Filter: %s Law ---\n", filterName)

	if len(docs.Cases) > 0 {
		context.WriteString("\n\n--- RELEVANT CASES ---\n")
		for i, c := range docs.Cases {
			if i > 0 {
				context.WriteString("\n\n")
			}
			fmt.Fprintf(&context, "Case: %s\n%s", c.Title, c.Text)
		}
	}

	if len(docs.Articles) > 0 {
		context.WriteString("\n\n--- RELEVANT LAW ARTICLES ---\n")
		for i, a := range docs.Articles {
			if i > 0 {
				context.WriteString("\n\n")
			}
			fmt.Fprintf(&context, "Source: %s (%s)\n%s", a.Filename, a.LawType, a.Text)
		}
	}

	return fmt.Sprintf(`You are a legal assistant for KSA (Kingdom of Saudi Arabia) law, specializing in %s law.
A user asks: "%s"

Here are relevant legal sources (filtered for %s law):
%s

Based only on these sources, provide a comprehensive and accurate answer focused on %s law. Reference specific cases and law articles where applicable. If the sources don't fully address the question, say so and suggest consulting with a qualified legal professional.`, filterName, question, filterName, context.String(), filterName)
}
