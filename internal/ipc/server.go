package ipc

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	autocorrectErrors "github.com/gcbaptista/go-autocorrect/internal/errors"
	"github.com/gcbaptista/go-autocorrect/internal/logger"
	"github.com/gcbaptista/go-autocorrect/internal/tokenizer"
	"github.com/gcbaptista/go-autocorrect/model"
)

// Corrector resolves words against named corpora
type Corrector interface {
	Correct(corpusName, word string, maxSuggestions int) (model.CorrectionResult, error)
}

// Server answers msgpack correction requests read from r on w.
type Server struct {
	corrector     Corrector
	defaultCorpus string
	decoder       *msgpack.Decoder
	encoder       *msgpack.Encoder
	log           *log.Logger
}

// NewServer creates a server; requests without a corpus use defaultCorpus.
func NewServer(corrector Corrector, defaultCorpus string, r io.Reader, w io.Writer) *Server {
	return &Server{
		corrector:     corrector,
		defaultCorpus: defaultCorpus,
		decoder:       msgpack.NewDecoder(r),
		encoder:       msgpack.NewEncoder(w),
		log:           logger.New("ipc"),
	}
}

// Serve handles requests until the input is exhausted. A clean EOF returns nil.
func (s *Server) Serve() error {
	s.log.Debugf("Serving corrections for corpus '%s'", s.defaultCorpus)

	for {
		var request CorrectionRequest
		if err := s.decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			if sendErr := s.send(ErrorResponse{Error: "invalid msgpack request", Code: 400}); sendErr != nil {
				return sendErr
			}
			return fmt.Errorf("failed to decode request: %w", err)
		}

		if err := s.send(s.handle(request)); err != nil {
			return err
		}
	}
}

func (s *Server) handle(request CorrectionRequest) any {
	word, err := tokenizer.CheckWord(request.Word)
	if err != nil {
		return ErrorResponse{ID: request.ID, Error: err.Error(), Code: 400}
	}

	corpusName := request.Corpus
	if corpusName == "" {
		corpusName = s.defaultCorpus
	}

	result, err := s.corrector.Correct(corpusName, word, request.Limit)
	if err != nil {
		code := 500
		if errors.Is(err, autocorrectErrors.ErrCorpusNotFound) {
			code = 404
		}
		return ErrorResponse{ID: request.ID, Error: err.Error(), Code: code}
	}

	suggestions := make([]Suggestion, len(result.Candidates))
	for i, c := range result.Candidates {
		suggestions[i] = Suggestion{Word: c.Word, Probability: c.Probability}
	}

	return CorrectionResponse{
		ID:          request.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		Tier:        result.Tier.String(),
		TimeTaken:   result.Took,
	}
}

func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}
