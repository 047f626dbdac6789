package generate

import (
	"fmt"
	"strings"

	"forumpulse/internal/core"
)

// Prompt-context bounds: the thread body and each quoted reply are clipped
// so a single verbose discussion cannot blow up the prompt.
const (
	maxPromptBodyLen  = 1000
	maxPromptReplyLen = 400
	maxPromptReplies  = 5
)

var styleInstructions = map[string]string{
	"professional": `Write in a professional, authoritative tone. Focus on providing value and
establishing expertise. Use clear, concise language that appeals to business
professionals and expats in the UAE.`,

	"empathetic": `Write with empathy and understanding. Acknowledge the challenges people face
with bureaucracy and paperwork in a new country. Be warm and supportive while
offering solutions.`,

	"educational": `Write in an educational, informative tone. Break down complex processes into
simple steps. Help readers understand the "why" behind requirements.`,

	"storytelling": `Use a storytelling approach. Start with a relatable scenario or common
situation, then guide readers to the solution. Make it engaging and personal.`,
}

// buildPrompt assembles the full generation prompt for one discussion in
// the requested style.
func buildPrompt(thread core.Thread, replies []core.Reply, style string) string {
	instructions, ok := styleInstructions[style]
	if !ok {
		instructions = styleInstructions["professional"]
	}

	return fmt.Sprintf(`You are a LinkedIn content creator for OnlineTranslation.ae, a professional
legal translation and document services company based in Dubai, UAE.

Based on this community discussion from the UAE, create an engaging LinkedIn post
that addresses the topic/issue raised and positions OnlineTranslation.ae as a helpful solution.

DISCUSSION CONTEXT:
%s

STYLE INSTRUCTIONS:
%s

CALL TO ACTION:
End with a subtle but effective call to action that:
- Introduces OnlineTranslation.ae as a helpful resource
- Mentions their services: certified legal translations, document attestation,
  Arabic-English translations, visa/legal document processing
- Feels natural, not salesy
- Invites engagement (comments, questions, DMs)

FORMATTING REQUIREMENTS:
1. Start with a hook - a question, bold statement, or relatable situation
2. Keep paragraphs short (2-3 sentences max) for mobile readability
3. Use line breaks between paragraphs for visual breathing room
4. Include 3-5 relevant emojis strategically placed (not overdone)
5. End with 8-12 relevant hashtags on a new line
6. Total length: 150-250 words (excluding hashtags)

HASHTAG SUGGESTIONS (choose relevant ones):
#DubaiLife #UAE #Expats #Dubai #AbuDhabi #LegalTranslation #ArabicTranslation
#VisaUAE #DocumentAttestation #UAEBusiness #ExpatLife #DubaiExpats
#LegalServices #Translation #CertifiedTranslation #MovingToDubai
#UAEResidents #BusinessSetup #FreezoneUAE #GoldenVisa

Generate ONLY the LinkedIn post content. No explanations or meta-commentary.`,
		discussionContext(thread, replies), instructions)
}

// discussionContext renders the thread and its strongest replies into the
// prompt. Only positively-scored replies are quoted.
func discussionContext(thread core.Thread, replies []core.Reply) string {
	var parts []string

	parts = append(parts,
		fmt.Sprintf("ORIGINAL POST TITLE: %s", thread.Title),
		fmt.Sprintf("COMMUNITY: r/%s", thread.Source),
		fmt.Sprintf("ENGAGEMENT: %d upvotes, %d comments", thread.Score, thread.NumComments),
	)

	if thread.Body != "" {
		parts = append(parts, fmt.Sprintf("\nPOST CONTENT:\n%s", clip(thread.Body, maxPromptBodyLen)))
	}

	if len(replies) > 0 {
		parts = append(parts, "\nTOP INSIGHTS FROM COMMENTS:")
		quoted := 0
		for _, reply := range replies {
			if quoted == maxPromptReplies {
				break
			}
			if reply.Score <= 0 {
				continue
			}
			quoted++
			parts = append(parts, fmt.Sprintf("\n%d. (Score: %d)\n%s", quoted, reply.Score, clip(reply.Body, maxPromptReplyLen)))
		}
	}

	return strings.Join(parts, "\n")
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
