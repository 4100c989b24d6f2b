package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/poiesic/proflens/ai"
	"github.com/poiesic/proflens/core"
	"github.com/poiesic/proflens/index"
)

// profilePayload is the ingestion request body.
type profilePayload struct {
	Name    string   `json:"name"`
	Rating  string   `json:"rating"`
	Tags    []string `json:"tags"`
	Reviews []string `json:"reviews"`
}

// urlPayload is the URL ingestion request body.
type urlPayload struct {
	URL string `json:"url"`
}

// chatPayload is the chat request body. Senders are the wire strings
// "user" and "assistant".
type chatPayload struct {
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// handleIngestProfile ingests a scraped profile submitted directly as
// JSON. Invalid or incomplete records are the client's fault (404, as
// the missing-fields response); embedding or index failures are not
// (405).
func (s *Server) handleIngestProfile(w http.ResponseWriter, r *http.Request) {
	var payload profilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeResult(w, http.StatusNotFound, false)
		return
	}

	profile := core.NewProfileRecord(payload.Name, payload.Rating, payload.Tags, payload.Reviews)
	s.ingest(w, r, profile)
}

// handleIngestURL scrapes a review page and ingests the result.
func (s *Server) handleIngestURL(w http.ResponseWriter, r *http.Request) {
	var payload urlPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.URL == "" {
		writeResult(w, http.StatusNotFound, false)
		return
	}

	profile, err := s.scraper.Scrape(r.Context(), payload.URL)
	if err != nil {
		s.logger.Error("error scraping profile", "url", payload.URL, "err", err)
		writeResult(w, http.StatusMethodNotAllowed, false)
		return
	}

	s.ingest(w, r, profile)
}

func (s *Server) ingest(w http.ResponseWriter, r *http.Request, profile *core.ProfileRecord) {
	err := s.ingestor.Ingest(r.Context(), profile)
	switch {
	case err == nil:
		writeResult(w, http.StatusOK, true)
	case errors.Is(err, core.ErrInvalidRecord):
		writeResult(w, http.StatusNotFound, false)
	case errors.Is(err, index.ErrDimensionMismatch):
		// Deployment bug, not a request problem: the embedder and the
		// index disagree on vector dimensions.
		s.logger.Error("dimension mismatch between embedder and index", "err", err)
		writeResult(w, http.StatusInternalServerError, false)
	default:
		s.logger.Error("error ingesting profile", "err", err)
		writeResult(w, http.StatusMethodNotAllowed, false)
	}
}

// handleChat streams the assistant's answer as raw text fragments.
//
// Errors before the first fragment map to status codes. Once streaming
// has begun the status line is committed, so a mid-stream failure
// aborts the connection instead of pretending the answer completed.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	conversation := make([]core.Message, len(payload.Messages))
	for i, m := range payload.Messages {
		conversation[i] = core.Message{Text: m.Text, Sender: senderFor(m.Sender)}
	}

	stream, err := s.assistant.Ask(r.Context(), conversation)
	if err != nil {
		s.writeChatError(w, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	flusher, _ := w.(http.Flusher)
	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			return
		}
		if err != nil {
			// The client already holds a partial answer under a 200
			// status. Abort the connection so the truncation is
			// unambiguous.
			s.logger.Error("stream aborted mid-answer", "err", err)
			panic(http.ErrAbortHandler)
		}

		if _, err := io.WriteString(w, fragment); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func (s *Server) writeChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrEmptyConversation),
		errors.Is(err, core.ErrInvalidSender),
		errors.Is(err, core.ErrNotUserTurn),
		errors.Is(err, core.ErrEmptyQuery):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ai.ErrProviderUnavailable),
		errors.Is(err, index.ErrUnavailable):
		http.Error(w, "service temporarily unavailable", http.StatusServiceUnavailable)
	default:
		s.logger.Error("error answering chat", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func senderFor(wire string) core.Sender {
	switch wire {
	case "user":
		return core.SenderUser
	case "assistant":
		return core.SenderAssistant
	default:
		return 0 // rejected by conversation validation
	}
}

func writeResult(w http.ResponseWriter, status int, success bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]bool{"success": success}) //nolint:errcheck // header already committed
}
