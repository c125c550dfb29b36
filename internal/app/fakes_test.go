package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ammarraza1199/Mock-interview-Backend/internal/model"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/pkg/filecrypt"
)

func newTestCipher(t *testing.T) *filecrypt.Cipher {
	t.Helper()
	key := base64.URLEncoding.EncodeToString(bytes.Repeat([]byte{0x11}, 32))
	cipher, err := filecrypt.New(key)
	require.NoError(t, err)
	return cipher
}

type fakeUploadStore struct {
	uploads   []*model.Upload
	createErr error
	latestErr error
	updateErr error

	updatedUploadID uint
	updatedCalls    int
}

func (s *fakeUploadStore) Create(upload *model.Upload) error {
	if s.createErr != nil {
		return s.createErr
	}
	upload.ID = uint(len(s.uploads) + 1)
	s.uploads = append(s.uploads, upload)
	return nil
}

func (s *fakeUploadStore) LatestByUserID(userID uint) (*model.Upload, error) {
	if s.latestErr != nil {
		return nil, s.latestErr
	}
	var latest *model.Upload
	for _, u := range s.uploads {
		if u.UserID == userID {
			latest = u
		}
	}
	return latest, nil
}

func (s *fakeUploadStore) UpdateGeneratedQuestions(uploadID uint, questions []string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedUploadID = uploadID
	s.updatedCalls++
	for _, u := range s.uploads {
		if u.ID == uploadID {
			u.GeneratedQuestions = questions
		}
	}
	return nil
}

type fakeAnalysisStore struct {
	records   []model.AnalysisFeedback
	createErr error
	listErr   error
}

func (s *fakeAnalysisStore) Create(feedback *model.AnalysisFeedback) error {
	if s.createErr != nil {
		return s.createErr
	}
	feedback.ID = uint(len(s.records) + 1)
	s.records = append(s.records, *feedback)
	return nil
}

func (s *fakeAnalysisStore) ListByUserID(userID uint) ([]model.AnalysisFeedback, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []model.AnalysisFeedback
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeGenerator struct {
	response string
	err      error

	calls   int
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (t *fakeTranscriber) Transcribe(_ context.Context, _ io.Reader) (string, error) {
	return t.text, t.err
}

type fakeUserStore struct {
	users     []*model.User
	createErr error
}

func (s *fakeUserStore) Create(user *model.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	user.ID = uint(len(s.users) + 1)
	s.users = append(s.users, user)
	return nil
}

func (s *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetByEmail(email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetByID(id uint) (*model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type sentMail struct {
	To      string
	Subject string
	HTML    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, HTML: html})
	return nil
}

type fakePublisher struct {
	published []model.Feedback
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, feedback model.Feedback) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, feedback)
	return nil
}
