package gemini

import (
	"line-knowledge-bot/internal/domain"

	"google.golang.org/genai"
)

// answerFromResponse extracts the answer text and the first citations of the grounding metadata
func answerFromResponse(resp *genai.GenerateContentResponse) *domain.Answer {
	answer := &domain.Answer{}
	if resp == nil {
		return answer
	}
	answer.Text = resp.Text()

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].GroundingMetadata == nil {
		return answer
	}

	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if len(answer.Citations) == domain.MaxCitations {
			break
		}
		if citation, ok := toCitation(chunk); ok {
			answer.Citations = append(answer.Citations, citation)
		}
	}
	return answer
}

func toCitation(chunk *genai.GroundingChunk) (domain.Citation, bool) {
	switch {
	case chunk == nil:
		return domain.Citation{}, false
	case chunk.Web != nil:
		return domain.Citation{
			Kind:  domain.CitationKindWeb,
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		}, true
	case chunk.RetrievedContext != nil:
		return domain.Citation{
			Kind:    domain.CitationKindFile,
			Title:   chunk.RetrievedContext.Title,
			Excerpt: truncateRunes(chunk.RetrievedContext.Text, domain.CitationExcerptLimit),
		}, true
	}
	return domain.Citation{}, false
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
