package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammarraza1199/Mock-interview-Backend/internal/pkg/extract"
)

func plainFile(name, content string) FilePayload {
	return FilePayload{
		Filename:  name,
		MediaType: "text/plain",
		Data:      []byte(content),
	}
}

func TestIngestStoresOnlyCiphertext(t *testing.T) {
	cipher := newTestCipher(t)
	uploads := &fakeUploadStore{}
	svc := NewUploadService(uploads, cipher)

	uploadID, err := svc.Ingest(IngestUploadInput{
		UserID:            1,
		Name:              "Ammar",
		Experience:        "Experienced",
		YearsOfExperience: " 5 ",
		Resume:            plainFile("resume.txt", "my resume"),
		JobDescription:    plainFile("jd.txt", "my job description"),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), uploadID)

	require.Len(t, uploads.uploads, 1)
	stored := uploads.uploads[0]
	assert.NotEqual(t, []byte("my resume"), stored.Resume)
	assert.NotEqual(t, []byte("my job description"), stored.JobDescription)
	assert.Equal(t, "experienced", stored.Experience)
	assert.Equal(t, "5", stored.YearsOfExperience)
	assert.Equal(t, "resume.txt", stored.FilenameResume)
	assert.Equal(t, "jd.txt", stored.FilenameJobDescription)

	resume, err := cipher.Decrypt(stored.Resume)
	require.NoError(t, err)
	assert.Equal(t, []byte("my resume"), resume)
	jd, err := cipher.Decrypt(stored.JobDescription)
	require.NoError(t, err)
	assert.Equal(t, []byte("my job description"), jd)
}

func TestIngestRejectsMissingFields(t *testing.T) {
	svc := NewUploadService(&fakeUploadStore{}, newTestCipher(t))

	_, err := svc.Ingest(IngestUploadInput{
		UserID:         1,
		Name:           "Ammar",
		Experience:     "",
		Resume:         plainFile("resume.txt", "x"),
		JobDescription: plainFile("jd.txt", "y"),
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = svc.Ingest(IngestUploadInput{
		UserID:         1,
		Name:           "Ammar",
		Experience:     "fresher",
		Resume:         FilePayload{Filename: "resume.txt", MediaType: "text/plain"},
		JobDescription: plainFile("jd.txt", "y"),
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestIngestRequiresName(t *testing.T) {
	uploads := &fakeUploadStore{}
	svc := NewUploadService(uploads, newTestCipher(t))

	_, err := svc.Ingest(IngestUploadInput{
		UserID:         1,
		Name:           "   ",
		Experience:     "fresher",
		Resume:         plainFile("resume.txt", "x"),
		JobDescription: plainFile("jd.txt", "y"),
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Empty(t, uploads.uploads)
}

func TestIngestSurfacesExtractionFailure(t *testing.T) {
	uploads := &fakeUploadStore{}
	svc := NewUploadService(uploads, newTestCipher(t))

	_, err := svc.Ingest(IngestUploadInput{
		UserID:     1,
		Name:       "Ammar",
		Experience: "fresher",
		Resume: FilePayload{
			Filename:  "resume.pdf",
			MediaType: "application/pdf",
			Data:      []byte("not a pdf"),
		},
		JobDescription: plainFile("jd.txt", "y"),
	})
	assert.True(t, errors.Is(err, extract.ErrExtraction))
	assert.Empty(t, uploads.uploads)
}

func TestJobDescriptionText(t *testing.T) {
	cipher := newTestCipher(t)
	uploads := &fakeUploadStore{}
	svc := NewUploadService(uploads, cipher)

	_, err := svc.Ingest(IngestUploadInput{
		UserID:         1,
		Name:           "Ammar",
		Experience:     "fresher",
		Resume:         plainFile("resume.txt", "resume"),
		JobDescription: plainFile("jd.txt", "senior backend role"),
	})
	require.NoError(t, err)

	text, err := svc.JobDescriptionText(1)
	require.NoError(t, err)
	assert.Equal(t, "senior backend role", text)
}

func TestJobDescriptionTextNoUpload(t *testing.T) {
	svc := NewUploadService(&fakeUploadStore{}, newTestCipher(t))

	_, err := svc.JobDescriptionText(1)
	assert.True(t, errors.Is(err, ErrUploadNotFound))
}

func TestJobDescriptionTextUsesLatestUpload(t *testing.T) {
	cipher := newTestCipher(t)
	uploads := &fakeUploadStore{}
	svc := NewUploadService(uploads, cipher)

	for _, jd := range []string{"first role", "second role"} {
		_, err := svc.Ingest(IngestUploadInput{
			UserID:         1,
			Name:           "Ammar",
			Experience:     "fresher",
			Resume:         plainFile("resume.txt", "resume"),
			JobDescription: plainFile("jd.txt", jd),
		})
		require.NoError(t, err)
	}

	text, err := svc.JobDescriptionText(1)
	require.NoError(t, err)
	assert.Equal(t, "second role", text)
}

func TestDecodeLossyReplacesInvalidBytes(t *testing.T) {
	out := decodeLossy([]byte{'o', 'k', 0xff, 0xfe, '!'})
	assert.True(t, len(out) > 0)
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "!")
	assert.NotContains(t, out, string([]byte{0xff}))
}
