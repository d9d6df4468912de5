// Package app serves the browser UI: model upload, synchronous
// recomputation per interaction, and live updates over a websocket.
package app

import (
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msmohankumar/massview/pkg/analysis"
	"github.com/msmohankumar/massview/pkg/material"
	"github.com/msmohankumar/massview/pkg/stl"
	"github.com/msmohankumar/massview/pkg/watcher"
)

const maxUploadBytes = 256 << 20

// Server hosts the analysis UI. Sessions are independent per file; the
// only shared state is the session map itself.
type Server struct {
	addr    string
	catalog []material.Material

	mu       sync.RWMutex
	sessions map[string]*Session

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool

	upgrader websocket.Upgrader
	watcher  *watcher.FileWatcher
}

// New creates a server with an injected material catalog
func New(addr string, catalog []material.Material) *Server {
	return &Server{
		addr:     addr,
		catalog:  catalog,
		sessions: make(map[string]*Session),
		clients:  make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Preload loads local model files as sessions before serving
func (s *Server) Preload(paths []string) error {
	for _, path := range paths {
		if err := s.loadLocal(path); err != nil {
			return err
		}
	}
	return nil
}

// WatchPreloaded re-analyzes preloaded files when they change on disk and
// pushes the recomputed result to connected pages
func (s *Server) WatchPreloaded() error {
	fw, err := watcher.New(500*time.Millisecond, s.reloadFile)
	if err != nil {
		return err
	}

	s.mu.RLock()
	for _, sess := range s.sessions {
		if sess.Path == "" {
			continue
		}
		if err := fw.Add(sess.Path); err != nil {
			s.mu.RUnlock()
			fw.Close()
			return err
		}
	}
	s.mu.RUnlock()

	fw.Start()
	s.watcher = fw
	return nil
}

// ListenAndServe blocks serving the UI
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/upload", s.handleUpload)
	mux.HandleFunc("/api/files", s.handleFiles)
	mux.HandleFunc("/api/materials", s.handleMaterials)
	mux.HandleFunc("/ws", s.handleWebSocket)

	log.Printf("Serving on http://localhost%s", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

// Close releases the file watcher if one is running
func (s *Server) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func (s *Server) loadLocal(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	model, err := stl.Parse(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	name := filepath.Base(path)
	sess := &Session{
		Name:      name,
		Model:     model,
		SizeBytes: info.Size(),
		Metrics:   analysis.ComputeMetrics(model, info.Size()),
		Path:      path,
	}

	s.mu.Lock()
	s.sessions[name] = sess
	s.mu.Unlock()
	return nil
}

// reloadFile is the watcher callback: reload, recompute, push
func (s *Server) reloadFile(path string) {
	if err := s.loadLocal(path); err != nil {
		log.Printf("Reload of %s failed: %v", path, err)
		return
	}
	log.Printf("Reloaded %s", path)

	name := filepath.Base(path)
	s.mu.RLock()
	sess := s.sessions[name]
	s.mu.RUnlock()

	payload := s.compute(sess, s.defaultInteraction(sess, 100))
	s.broadcast(payload)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

// handleUpload accepts one or more model files. Every file becomes an
// independent session and is answered with an initial payload.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("invalid upload: %v", err), http.StatusBadRequest)
		return
	}

	infillPercent := 100
	if v := r.FormValue("infillPercent"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			infillPercent = n
		}
	}

	var payloads []Payload
	for _, header := range r.MultipartForm.File["models"] {
		payload, err := s.addUpload(header, infillPercent)
		if err != nil {
			// A bad file is reported in its own panel; other files in
			// the same upload still load.
			payloads = append(payloads, Payload{File: header.Filename, Error: err.Error()})
			log.Printf("Upload of %s failed: %v", header.Filename, err)
			continue
		}
		log.Printf("Uploaded %s (%.2f KB)", header.Filename, payload.Metrics.FileSizeKB)
		payloads = append(payloads, payload)
	}

	writeJSON(w, payloads)
}

func (s *Server) addUpload(header *multipart.FileHeader, infillPercent int) (Payload, error) {
	file, err := header.Open()
	if err != nil {
		return Payload{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	model, err := stl.Load(file, extensionOf(name), strings.TrimSuffix(name, filepath.Ext(name)))
	if err != nil {
		return Payload{}, err
	}

	sess := &Session{
		Name:      name,
		Model:     model,
		SizeBytes: header.Size,
		Metrics:   analysis.ComputeMetrics(model, header.Size),
	}

	s.mu.Lock()
	s.sessions[name] = sess
	s.mu.Unlock()

	return s.compute(sess, s.defaultInteraction(sess, infillPercent)), nil
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.RUnlock()
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Name < sessions[j].Name })

	payloads := make([]Payload, 0, len(sessions))
	for _, sess := range sessions {
		payloads = append(payloads, s.compute(sess, s.defaultInteraction(sess, 100)))
	}
	writeJSON(w, payloads)
}

func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.catalog)
}

// handleWebSocket answers each interaction message with a recomputed
// payload for the named file
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
		conn.Close()
	}()

	for {
		var in Interaction
		if err := conn.ReadJSON(&in); err != nil {
			return
		}

		s.mu.RLock()
		sess, ok := s.sessions[in.File]
		s.mu.RUnlock()

		var payload Payload
		if !ok {
			payload = Payload{File: in.File, Error: fmt.Sprintf("no loaded model named %q", in.File)}
		} else {
			payload = s.compute(sess, in)
		}

		if err := conn.WriteJSON(payload); err != nil {
			return
		}
	}
}

// broadcast pushes a payload to every connected page
func (s *Server) broadcast(payload Payload) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for client := range s.clients {
		if err := client.WriteJSON(payload); err != nil {
			log.Printf("WebSocket write error: %v", err)
			client.Close()
			delete(s.clients, client)
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Response encode error: %v", err)
	}
}

// extensionOf maps an uploaded filename to the declared loader extension
func extensionOf(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "stp" {
		ext = "step"
	}
	return ext
}
