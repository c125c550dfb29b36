package app

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/ammarraza1199/Mock-interview-Backend/internal/model"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/pkg/extract"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/pkg/filecrypt"
)

var ErrUploadNotFound = errors.New("no upload found for the user")

// UploadStore owns the lifecycle of upload records: append-only creation,
// recency-based lookup and the single mutable field.
type UploadStore interface {
	Create(upload *model.Upload) error
	LatestByUserID(userID uint) (*model.Upload, error)
	UpdateGeneratedQuestions(uploadID uint, questions []string) error
}

// FilePayload is one uploaded document with its declared media type.
type FilePayload struct {
	Filename  string
	MediaType string
	Data      []byte
}

type IngestUploadInput struct {
	UserID uint
	// Name is the candidate's display name. Required at the interface but
	// not persisted; the account already carries identity.
	Name              string
	Experience        string
	YearsOfExperience string
	Resume            FilePayload
	JobDescription    FilePayload
}

type UploadService struct {
	uploadStore UploadStore
	cipher      *filecrypt.Cipher
}

func NewUploadService(uploadStore UploadStore, cipher *filecrypt.Cipher) *UploadService {
	return &UploadService{
		uploadStore: uploadStore,
		cipher:      cipher,
	}
}

// Ingest validates both documents, encrypts the raw bytes and appends a new
// upload record. Extraction runs here so a malformed document fails the
// request instead of producing empty prompts later; the extracted text itself
// is not persisted, only ciphertext is.
func (s *UploadService) Ingest(input IngestUploadInput) (uint, error) {
	if input.UserID == 0 || strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Experience) == "" {
		return 0, ErrInvalidInput
	}
	if len(input.Resume.Data) == 0 || len(input.JobDescription.Data) == 0 {
		return 0, ErrInvalidInput
	}

	if _, err := extract.Text(input.JobDescription.Data, input.JobDescription.MediaType); err != nil {
		return 0, err
	}
	if _, err := extract.Text(input.Resume.Data, input.Resume.MediaType); err != nil {
		return 0, err
	}

	encryptedResume, err := s.cipher.Encrypt(input.Resume.Data)
	if err != nil {
		return 0, err
	}
	encryptedJobDescription, err := s.cipher.Encrypt(input.JobDescription.Data)
	if err != nil {
		return 0, err
	}

	upload := &model.Upload{
		UserID:                 input.UserID,
		Resume:                 encryptedResume,
		JobDescription:         encryptedJobDescription,
		FilenameResume:         input.Resume.Filename,
		FilenameJobDescription: input.JobDescription.Filename,
		Experience:             strings.ToLower(strings.TrimSpace(input.Experience)),
		YearsOfExperience:      strings.TrimSpace(input.YearsOfExperience),
	}
	if err := s.uploadStore.Create(upload); err != nil {
		return 0, err
	}
	return upload.ID, nil
}

// JobDescriptionText decrypts the active upload's job description and returns
// it as text.
func (s *UploadService) JobDescriptionText(userID uint) (string, error) {
	if userID == 0 {
		return "", ErrInvalidInput
	}

	upload, err := s.uploadStore.LatestByUserID(userID)
	if err != nil {
		return "", err
	}
	if upload == nil {
		return "", ErrUploadNotFound
	}

	plaintext, err := s.cipher.Decrypt(upload.JobDescription)
	if err != nil {
		return "", err
	}
	return decodeLossy(plaintext), nil
}

// decodeLossy turns raw bytes into valid UTF-8, replacing undecodable bytes
// instead of failing the request.
func decodeLossy(b []byte) string {
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
