package feedback

import "strings"

// Speaker identifies which side of the interview an utterance belongs to.
type Speaker string

const (
	SpeakerInterviewer Speaker = "interviewer"
	SpeakerInterviewee Speaker = "interviewee"
)

// Utterance is one speaker-tagged line of a transcript, in conversation order.
type Utterance struct {
	Speaker Speaker
	Text    string
}

// Exchange is one question/answer pair extracted from a transcript.
// Answer is empty when the conversation ended on the interviewer's turn.
type Exchange struct {
	Question string
	Answer   string
}

// Normalize pairs transcript utterances into exchanges. The transcript is
// expected to alternate interviewer/interviewee starting with the
// interviewer; utterances are paired strictly by position and speaker tags
// are not cross-checked, so mistagged input produces mistagged pairs.
// An odd-length transcript yields a trailing exchange with an empty answer.
func Normalize(transcript []Utterance) []Exchange {
	if len(transcript) == 0 {
		return nil
	}

	exchanges := make([]Exchange, 0, (len(transcript)+1)/2)
	for i := 0; i < len(transcript); i += 2 {
		exchange := Exchange{Question: transcript[i].Text}
		if i+1 < len(transcript) {
			exchange.Answer = transcript[i+1].Text
		}
		exchanges = append(exchanges, exchange)
	}
	return exchanges
}

// ParseSpeaker normalizes a raw speaker tag. Unknown tags map to the
// interviewee side so that upstream transcription quirks never drop a turn.
func ParseSpeaker(raw string) Speaker {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "interviewer", "assistant":
		return SpeakerInterviewer
	default:
		return SpeakerInterviewee
	}
}
