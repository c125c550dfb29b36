package ai

import (
	"context"
	"fmt"
	"io"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

// AssemblyAITranscriber converts spoken answers to text via AssemblyAI.
type AssemblyAITranscriber struct {
	client *aai.Client
}

func NewAssemblyAITranscriber(apiKey string) *AssemblyAITranscriber {
	return &AssemblyAITranscriber{client: aai.NewClient(apiKey)}
}

func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	transcript, err := t.client.Transcripts.TranscribeFromReader(ctx, audio, nil)
	if err != nil {
		return "", fmt.Errorf("transcribe audio failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown transcription error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", fmt.Errorf("transcribe audio failed: %s", msg)
	}
	if transcript.Text == nil {
		return "", nil
	}
	return *transcript.Text, nil
}
