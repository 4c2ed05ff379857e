package httpapi

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/sandevgo/campusbot/internal/core"
	"github.com/sandevgo/campusbot/internal/stream"
	"github.com/sandevgo/campusbot/pkg/log"
)

const (
	disabledReply    = "LLM 服务当前已禁用。请联系管理员启用服务。"
	disabledMessage  = "LLM 服务当前已禁用"
	internalErrReply = "抱歉，服务暂时不可用。请稍后再试，或者检查你的网络连接。"
)

type chatRequest struct {
	Query   string `json:"query"`
	Context string `json:"context,omitempty"`
}

type chatResponse struct {
	Reply          string  `json:"reply"`
	Timestamp      string  `json:"timestamp"`
	Topic          string  `json:"topic,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
	ProcessingTime int64   `json:"processingTime,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"message":   core.AppName + " chat service is running",
		"timestamp": nowStamp(),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !s.svcCfg.Enabled {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error":     "Service disabled",
			"reply":     disabledReply,
			"timestamp": nowStamp(),
		})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Query is required"})
		return
	}

	ans, err := s.gen.ProcessQuery(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, core.ErrServiceDisabled) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"error":     "Service disabled",
				"reply":     disabledReply,
				"timestamp": nowStamp(),
			})
			return
		}
		log.FromCtx(r.Context()).Error().Err(err).Msg("chat request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":     "Internal server error",
			"reply":     internalErrReply,
			"timestamp": nowStamp(),
		})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:          ans.Reply,
		Timestamp:      nowStamp(),
		Topic:          ans.Topic,
		Confidence:     ans.Confidence,
		ProcessingTime: ans.ProcessingTime,
	})
}

func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	if !s.svcCfg.Enabled {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error":   "Service disabled",
			"message": disabledMessage,
		})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Query is required"})
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	logger := log.FromCtx(r.Context())
	send := func(m stream.Message) bool {
		frame, err := stream.EncodeFrame(m)
		if err != nil {
			// Drop the bad frame, keep the stream alive.
			logger.Warn().Err(err).Msg("frame encode failed, skipping")
			return true
		}
		if _, err := w.Write(frame); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send(stream.Start()) {
		return
	}

	start := time.Now()
	ans, err := s.gen.ProcessQuery(r.Context(), req.Query)
	if err != nil {
		logger.Error().Err(err).Msg("stream query failed")
		send(stream.Error())
		return
	}

	fragments := stream.Fragments(ans.Reply)
	for _, fragment := range fragments {
		if !send(stream.Chunk(fragment)) {
			return
		}
		if !s.pace(r) {
			return
		}
	}

	send(stream.End(stream.Metadata{
		Topic:          ans.Topic,
		Confidence:     ans.Confidence,
		ProcessingTime: time.Since(start).Milliseconds(),
	}))

	logger.Debug().
		Str("topic", ans.Topic).
		Int("fragments", len(fragments)).
		Msg("stream completed")
}

// pace sleeps a random interval between chunks, bailing out early when the
// client goes away. Returns false when the request context is done.
func (s *Server) pace(r *http.Request) bool {
	min, max := s.svcCfg.ChunkDelayMin, s.svcCfg.ChunkDelayMax
	if max <= 0 {
		return r.Context().Err() == nil
	}

	delay := min
	if max > min {
		delay += time.Duration(rand.Int63n(int64(max - min)))
	}

	select {
	case <-time.After(delay):
		return true
	case <-r.Context().Done():
		return false
	}
}
