package app

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"regexp"
	"strings"

	"github.com/ammarraza1199/Mock-interview-Backend/internal/model"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/pkg/filecrypt"
)

const maxGeneratedQuestions = 20

// questionLinePattern matches one numbered line of provider output; the
// capture group is the question text.
var questionLinePattern = regexp.MustCompile(`(?m)^\s*\d+\.\s*(.*)`)

// TextGenerator is the prompt-in/text-out contract of the generation
// provider. One call per request, no streaming, no retries.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
}

// AnalysisFeedbackStore persists scored answers. Append-only.
type AnalysisFeedbackStore interface {
	Create(feedback *model.AnalysisFeedback) error
	ListByUserID(userID uint) ([]model.AnalysisFeedback, error)
}

// InterviewService generates interview questions from the active upload and
// scores submitted answers.
type InterviewService struct {
	uploadStore   UploadStore
	analysisStore AnalysisFeedbackStore
	generator     TextGenerator
	transcriber   Transcriber
	cipher        *filecrypt.Cipher
}

type QuestionsResult struct {
	Questions []string `json:"questions"`
	Count     int      `json:"count"`
}

func NewInterviewService(
	uploadStore UploadStore,
	analysisStore AnalysisFeedbackStore,
	generator TextGenerator,
	transcriber Transcriber,
	cipher *filecrypt.Cipher,
) *InterviewService {
	return &InterviewService{
		uploadStore:   uploadStore,
		analysisStore: analysisStore,
		generator:     generator,
		transcriber:   transcriber,
		cipher:        cipher,
	}
}

// Questions returns the cached question list for the user's active upload,
// generating and persisting it first when absent. Once cached, the provider
// is not called again for the same upload; concurrent first requests may each
// generate, and the last write wins.
func (s *InterviewService) Questions(ctx context.Context, userID uint) (*QuestionsResult, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	upload, err := s.uploadStore.LatestByUserID(userID)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, ErrUploadNotFound
	}

	if len(upload.GeneratedQuestions) > 0 {
		return &QuestionsResult{
			Questions: upload.GeneratedQuestions,
			Count:     len(upload.GeneratedQuestions),
		}, nil
	}

	resumeText, jobDescriptionText, err := s.decryptTexts(upload)
	if err != nil {
		return nil, err
	}

	prompt := buildQuestionPrompt(experienceClause(upload), jobDescriptionText, resumeText)
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	questions := selectQuestions(parseNumberedLines(raw), maxGeneratedQuestions)

	if err := s.uploadStore.UpdateGeneratedQuestions(upload.ID, questions); err != nil {
		return nil, err
	}

	return &QuestionsResult{Questions: questions, Count: len(questions)}, nil
}

// AnalyzeAnswer scores one answer against the active upload's context and
// appends an AnalysisFeedback record. Every call is a new evaluation event:
// there is deliberately no caching here.
func (s *InterviewService) AnalyzeAnswer(ctx context.Context, userID uint, question, answer string) (string, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if userID == 0 || question == "" || answer == "" {
		return "", ErrInvalidInput
	}

	upload, err := s.uploadStore.LatestByUserID(userID)
	if err != nil {
		return "", err
	}
	if upload == nil {
		return "", ErrUploadNotFound
	}

	resumeText, jobDescriptionText, err := s.decryptTexts(upload)
	if err != nil {
		return "", err
	}

	prompt := buildAnalysisPrompt(jobDescriptionText, resumeText, question, answer)
	feedback, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	record := &model.AnalysisFeedback{
		UserID:   userID,
		Question: question,
		Answer:   answer,
		Feedback: feedback,
	}
	if err := s.analysisStore.Create(record); err != nil {
		return "", err
	}
	return feedback, nil
}

// Transcribe proxies recorded audio to the transcription provider.
func (s *InterviewService) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	return s.transcriber.Transcribe(ctx, audio)
}

func (s *InterviewService) decryptTexts(upload *model.Upload) (resumeText, jobDescriptionText string, err error) {
	resumeBytes, err := s.cipher.Decrypt(upload.Resume)
	if err != nil {
		return "", "", err
	}
	jobDescriptionBytes, err := s.cipher.Decrypt(upload.JobDescription)
	if err != nil {
		return "", "", err
	}
	return decodeLossy(resumeBytes), decodeLossy(jobDescriptionBytes), nil
}

func experienceClause(upload *model.Upload) string {
	if upload.IsExperienced() {
		return fmt.Sprintf("The candidate is experienced with %s years of experience.", upload.YearsOfExperience)
	}
	return "The candidate is a fresher."
}

func buildQuestionPrompt(experience, jobDescription, resume string) string {
	return fmt.Sprintf(`You are an expert technical interviewer. Your task is to generate a list of %d interview questions
based on the provided job description, candidate resume, and experience.

Instructions:
1. Analyze the Job Description and Resume carefully.
2. Consider that %s
3. Tailor the difficulty and type of questions accordingly.
4. Generate realistic, high-quality questions without placeholders.

Job Description:
%s

Resume:
%s
`, maxGeneratedQuestions, experience, jobDescription, resume)
}

func buildAnalysisPrompt(jobDescription, resume, question, answer string) string {
	return fmt.Sprintf(`You are an expert technical interviewer and career coach.
Evaluate the following candidate answer based on the job description and resume.

---

Job Description:
%s

Resume Summary:
%s

Interview Question:
%s

Transcript of Candidate's Answer:
%s
---

Do the following:
1. Score the candidate's answer out of 30 points:
   - Relevance to question and job description (10 pts)
   - Clarity and structure (10 pts)
   - Communication style & confidence (10 pts)
2. Give 3 bullet points of feedback:
   - What was done well
   - What was missing or unclear
   - What could be improved
3. Suggest 1 key improvement area.
4. Final verdict: strong / average / weak.
`, jobDescription, resume, question, answer)
}

// parseNumberedLines extracts the question text from every "N. question"
// line of the provider response.
func parseNumberedLines(raw string) []string {
	matches := questionLinePattern.FindAllStringSubmatch(raw, -1)
	questions := make([]string, 0, len(matches))
	for _, m := range matches {
		questions = append(questions, m[1])
	}
	return questions
}

// selectQuestions deduplicates by exact string equality, shuffles so the cap
// does not systematically favor the provider's emission order, and truncates
// to at most limit entries. Fewer than limit unique questions is not padded.
func selectQuestions(questions []string, limit int) []string {
	seen := make(map[string]struct{}, len(questions))
	unique := make([]string, 0, len(questions))
	for _, q := range questions {
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		unique = append(unique, q)
	}

	rand.Shuffle(len(unique), func(i, j int) {
		unique[i], unique[j] = unique[j], unique[i]
	})

	if len(unique) > limit {
		unique = unique[:limit]
	}
	return unique
}
