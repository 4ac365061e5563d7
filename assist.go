package lumiere

import (
	"context"
	"fmt"
	"strings"
)

// CourseOutline is a suggested multi-act structure for a new course.
type CourseOutline struct {
	Title       string
	Description string
	Acts        []ActOutline
}

// ActOutline is one suggested section of a CourseOutline.
type ActOutline struct {
	Title       string
	Description string
}

// Assistant produces generated course content. Every method degrades
// gracefully: callers always receive usable output, never an error that
// would block authoring.
type Assistant interface {
	// EnrichVideoMetadata resolves a title, description and thumbnail for
	// a video URL. Used asynchronously after a TEXT block converts.
	EnrichVideoMetadata(ctx context.Context, url string) VideoMeta

	// GenerateCoverImage returns an image reference (URL or data URI) for
	// a course cover prompt, or "" when generation is unavailable.
	GenerateCoverImage(ctx context.Context, prompt string) string

	// AnalyzeVideo answers a free-form prompt about an uploaded video clip.
	AnalyzeVideo(ctx context.Context, video []byte, prompt string) string

	// SuggestStructure drafts a course outline for a topic.
	SuggestStructure(ctx context.Context, topic string) CourseOutline

	// Chat answers one learner message given the running history, most
	// recent last.
	Chat(ctx context.Context, history []string, message string) string
}

// StudioAssistant is the deterministic built-in Assistant. It needs no
// network and no credentials, which keeps authoring usable offline.
type StudioAssistant struct{}

var _ Assistant = StudioAssistant{}

func (StudioAssistant) EnrichVideoMetadata(_ context.Context, url string) VideoMeta {
	meta := VideoMeta{
		Title:       "Lesson Video",
		Description: "Video lesson added from a pasted link.",
	}
	if id := VideoID(url); id != "" {
		meta.Thumbnail = fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id)
	}
	return meta
}

func (StudioAssistant) GenerateCoverImage(_ context.Context, prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		return ""
	}
	return "https://picsum.photos/seed/" + Slugify(prompt) + "/1200/675"
}

func (StudioAssistant) AnalyzeVideo(_ context.Context, video []byte, prompt string) string {
	if len(video) == 0 {
		return "No video was provided to analyze."
	}
	return fmt.Sprintf("The clip (%d bytes) appears suitable for this lesson. Prompt noted: %s", len(video), strings.TrimSpace(prompt))
}

func (StudioAssistant) SuggestStructure(_ context.Context, topic string) CourseOutline {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = "Your Topic"
	}
	return CourseOutline{
		Title:       "Mastering " + topic,
		Description: "A guided journey through " + topic + ", from first principles to confident practice.",
		Acts: []ActOutline{
			{Title: "Act 1: Foundations", Description: "The core ideas behind " + topic + "."},
			{Title: "Act 2: Technique", Description: "Hands-on practice and common pitfalls."},
			{Title: "Act 3: Mastery", Description: "Putting it all together."},
		},
	}
}

func (StudioAssistant) Chat(_ context.Context, history []string, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return "Ask me anything about this course."
	}
	if len(history) == 0 {
		return "Welcome! You asked: " + message + ". The course material above covers this in depth."
	}
	return "Building on our conversation: " + message + " relates closely to what we discussed earlier."
}
