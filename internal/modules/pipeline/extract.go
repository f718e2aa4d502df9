package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Supported upload file types. Audio and video get a canned transcript until
// a speech-to-text backend is wired in.
const (
	FileTypeTxt = "txt"
	FileTypeMd  = "md"
	FileTypeMp3 = "mp3"
	FileTypeWav = "wav"
	FileTypeMp4 = "mp4"
)

// AllowedFileTypes lists the accepted upload extensions.
var AllowedFileTypes = []string{FileTypeTxt, FileTypeMd, FileTypeMp3, FileTypeWav, FileTypeMp4}

// IsAllowedFileType reports whether ext (without dot, any case) is accepted.
func IsAllowedFileType(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, t := range AllowedFileTypes {
		if t == ext {
			return true
		}
	}
	return false
}

// ExtractText turns raw file bytes into transcript text.
func ExtractText(data []byte, fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case FileTypeTxt, FileTypeMd:
		return string(data), nil
	case FileTypeMp3, FileTypeWav, FileTypeMp4:
		return mockAudioTranscript, nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", fileType)
	}
}

// ComputeFileHash returns the SHA-256 hex digest used for duplicate upload
// detection.
func ComputeFileHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// mockAudioTranscript stands in for audio/video transcription.
const mockAudioTranscript = `Interviewer: Thank you for taking the time to talk with us today. Can you tell me about your experience with the product so far?

Speaker 1: Sure. Overall, I've been using it for about three months now, and I have some strong opinions.

Interviewer: Great, let's start with what's working well for you.

Speaker 1: The core functionality is really solid. I love how easy it is to set up initially, the onboarding flow was intuitive and I was up and running in maybe 15 minutes. The dashboard gives me a great overview of everything I need to see at a glance.

Interviewer: That's good to hear. What about the areas where you've had difficulties?

Speaker 1: Honestly, the search feature is really frustrating. It's slow, and half the time it doesn't find what I'm looking for even though I know the data is there. I've had to resort to manually scrolling through pages of results, which is incredibly time-consuming.

Interviewer: Can you give me a specific example?

Speaker 1: Sure. Last week I was looking for a report I created about two weeks ago. I searched for the title, exact title, and it returned zero results. I eventually found it by going through my recent items one by one. That took me about 20 minutes.

Interviewer: That sounds frustrating. Anything else that's been difficult?

Speaker 1: The export feature is confusing. I wish there was a simpler way to export data to PDF. Right now I have to go through like five steps, and the formatting always comes out wrong. I'd love a one-click export that just works.

Speaker 1: Oh, and the notification system is overwhelming. I get way too many notifications about things that aren't relevant to me. I've basically turned them all off, which means I miss the important ones too. There should be a way to customize which notifications I receive.

Interviewer: Those are really helpful insights. What features would you like to see added?

Speaker 1: I'd love to see a collaboration feature where I can share dashboards with my team and we can comment on specific data points. Right now we just take screenshots and paste them into Slack, which is not ideal.

Speaker 1: Also, mobile support would be amazing. I often need to check metrics on the go, but the web app isn't responsive at all on my phone.

Interviewer: Last question, would you recommend the product to a colleague?

Speaker 1: Despite the issues I mentioned, yes, I would. The core value is there. If you fix the search and make exports easier, it would be a no-brainer recommendation. Right now I'd say it's a 7 out of 10.`
