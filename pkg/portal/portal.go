package portal

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/webconf-project/webconf-go/pkg/log"
	"github.com/webconf-project/webconf-go/pkg/param"
	"github.com/webconf-project/webconf-go/pkg/persistence"
	"github.com/webconf-project/webconf-go/pkg/storage"
)

// Portal serves the configuration page of a parameter tree and keeps the
// tree in sync with its storage image.
type Portal struct {
	mu sync.Mutex

	config Config
	tree   *param.Tree
	root   param.Handle
	auth   param.Handle

	// Storage image: version marker followed by the tree values.
	size   int
	eeprom *storage.EEPROM
	store  *persistence.ImageStore

	initialized bool
	savedAt     time.Time

	mux *http.ServeMux

	logger *slog.Logger
	events log.Logger
}

// New creates a portal for the tree below root.
func New(tree *param.Tree, root param.Handle, config Config) (*Portal, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if tree == nil || tree.ID(root) == "" {
		return nil, fmt.Errorf("%w: unknown root item", ErrInvalidConfig)
	}
	if config.AuthUser == "" {
		config.AuthUser = DefaultAuthUser
	}

	p := &Portal{
		config: config,
		tree:   tree,
		root:   root,
		auth:   param.NoHandle,
		size:   storage.VersionLength + tree.StorageSize(root),
		mux:    http.NewServeMux(),
		logger: config.Logger,
		events: config.EventLogger,
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.events == nil {
		p.events = log.NoopLogger{}
	}
	p.eeprom = storage.NewEEPROM(p.size)
	if config.ImagePath != "" {
		p.store = persistence.NewImageStore(config.ImagePath)
	}

	if config.AuthPasswordID != "" {
		h, ok := tree.Lookup(config.AuthPasswordID)
		if !ok || tree.Kind(h) != param.KindPassword {
			return nil, fmt.Errorf("%w: %q is not a password parameter", ErrInvalidConfig, config.AuthPasswordID)
		}
		p.auth = h
	}

	p.mux.HandleFunc("/health", p.handleHealth)
	p.mux.HandleFunc("/", p.handleConfig)
	return p, nil
}

// StorageSize returns the size of the storage image in bytes.
func (p *Portal) StorageSize() int {
	return p.size
}

// Init loads the stored values into the tree. When no image exists, or it
// was written with another config version, defaults are applied and
// stored instead.
func (p *Portal) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if data := p.readImage(); data != nil {
		p.eeprom = storage.FromBytes(data)
	}

	c := p.eeprom.Cursor(0)
	version, err := c.ReadString(storage.VersionLength)
	if err != nil {
		return err
	}

	if version == p.config.ConfigVersion {
		if err := p.tree.LoadValue(p.root, c); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		p.initialized = true
		p.logger.Info("config loaded", "version", version, "size", p.size)
		p.logEvent(log.Event{
			Category: log.CategoryLoad,
			Source:   log.SourceStartup,
			Storage:  p.storageEvent(false),
		})
		return nil
	}

	p.logger.Info("config version mismatch, applying defaults",
		"stored", version, "expected", p.config.ConfigVersion)
	p.tree.ApplyDefaultValue(p.root)
	p.logEvent(log.Event{
		Category: log.CategoryDefaults,
		Source:   log.SourceStartup,
		Storage:  p.storageEvent(true),
	})
	if err := p.storeLocked(log.SourceStartup, ""); err != nil {
		return err
	}
	p.initialized = true
	return nil
}

// readImage returns the persisted image, or nil when there is none or it
// cannot be used.
func (p *Portal) readImage() []byte {
	if p.store == nil {
		return nil
	}
	img, err := p.store.Load()
	if err != nil {
		p.logger.Warn("stored config unreadable, using defaults", "path", p.store.Path(), "error", err)
		p.logEvent(log.Event{
			Category: log.CategoryError,
			Source:   log.SourceStartup,
			Error:    &log.ErrorEventData{Message: err.Error(), Context: "load image"},
		})
		return nil
	}
	if img == nil {
		return nil
	}
	if len(img.Data) != p.size {
		p.logger.Info("stored config has another layout", "stored", len(img.Data), "expected", p.size)
		return nil
	}
	p.savedAt = img.SavedAt
	return img.Data
}

// Save stores the current tree values and calls the saved hook.
func (p *Portal) Save() error {
	return p.save(log.SourceConsole, "")
}

func (p *Portal) save(src log.Source, requestID string) error {
	p.mu.Lock()
	if !p.initialized {
		p.mu.Unlock()
		return ErrNotInitialized
	}
	err := p.storeLocked(src, requestID)
	p.mu.Unlock()

	if err != nil {
		return err
	}
	if p.config.OnConfigSaved != nil {
		p.config.OnConfigSaved()
	}
	return nil
}

// storeLocked writes the version marker and all values to the image and
// persists it. Must be called with mu held.
func (p *Portal) storeLocked(src log.Source, requestID string) error {
	c := p.eeprom.Cursor(0)
	if err := c.WriteString(p.config.ConfigVersion, storage.VersionLength); err != nil {
		return err
	}
	if err := p.tree.StoreValue(p.root, c); err != nil {
		return fmt.Errorf("store config: %w", err)
	}

	if p.store != nil {
		img := &persistence.Image{
			ConfigVersion: p.config.ConfigVersion,
			Data:          p.eeprom.Bytes(),
		}
		if err := p.store.Save(img); err != nil {
			p.logEvent(log.Event{
				RequestID: requestID,
				Category:  log.CategoryError,
				Source:    src,
				Error:     &log.ErrorEventData{Message: err.Error(), Context: "save image"},
			})
			return fmt.Errorf("save image: %w", err)
		}
		p.savedAt = img.SavedAt
	}
	p.eeprom.MarkClean()

	p.logger.Debug("config stored", "version", p.config.ConfigVersion, "size", p.size)
	p.logEvent(log.Event{
		RequestID: requestID,
		Category:  log.CategoryStore,
		Source:    src,
		Storage:   p.storageEvent(false),
	})
	return nil
}

// ApplyDefaults resets every value to its default. Nothing is stored.
func (p *Portal) ApplyDefaults() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tree.ApplyDefaultValue(p.root)
	p.logEvent(log.Event{Category: log.CategoryDefaults, Source: log.SourceConsole})
}

// WithTree runs fn with exclusive access to the tree.
func (p *Portal) WithTree(fn func(tree *param.Tree, root param.Handle) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn(p.tree, p.root)
}

// Image returns a copy of the storage image.
func (p *Portal) Image() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.eeprom.Bytes()
}

func (p *Portal) storageEvent(mismatch bool) *log.StorageEvent {
	ev := &log.StorageEvent{
		Size:            p.size,
		ConfigVersion:   p.config.ConfigVersion,
		VersionMismatch: mismatch,
	}
	if p.store != nil {
		ev.Path = p.store.Path()
	}
	return ev
}

func (p *Portal) logEvent(event log.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	p.events.Log(event)
}

// ServeHTTP implements http.Handler.
func (p *Portal) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mux.ServeHTTP(w, r)
}

// handleConfig renders the form, and applies it when a POST carries
// SaveFormField.
func (p *Portal) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := NewHTTPRequest(w, r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	saved := p.serveConfig(w, r, req, uuid.NewString())
	if saved && p.config.OnConfigSaved != nil {
		p.config.OnConfigSaved()
	}
}

// serveConfig handles an authenticated config page request and reports
// whether the submission was stored.
func (p *Portal) serveConfig(w http.ResponseWriter, r *http.Request, req *HTTPRequest, requestID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		http.Error(w, ErrNotInitialized.Error(), http.StatusServiceUnavailable)
		return false
	}
	if !p.authorized(r) {
		w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", p.config.Title))
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}

	submitted := r.Method == http.MethodPost && req.HasArg(SaveFormField)
	saved := false
	if submitted {
		var err error
		saved, err = p.applySubmission(req, requestID, r.RemoteAddr)
		if err != nil {
			p.logger.Error("failed to store config", "request_id", requestID, "error", err)
			http.Error(w, "Failed to store configuration", http.StatusInternalServerError)
			return false
		}
	} else {
		p.logEvent(log.Event{
			RequestID:  requestID,
			Category:   log.CategoryRender,
			Source:     log.SourceHTTP,
			RemoteAddr: r.RemoteAddr,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	if err := p.renderPage(req, submitted && !saved, saved); err != nil {
		p.logger.Warn("failed to send config page", "request_id", requestID, "error", err)
	}
	return saved
}

// applySubmission validates the posted form and, when accepted, updates
// and stores the tree. Must be called with mu held.
func (p *Portal) applySubmission(req *HTTPRequest, requestID, remote string) (bool, error) {
	p.tree.ClearErrorMessage(p.root)

	valid := true
	if p.config.Validator != nil {
		valid = p.config.Validator(p.tree, req)
	}
	p.logEvent(log.Event{
		RequestID:  requestID,
		Category:   log.CategoryValidation,
		Source:     log.SourceHTTP,
		RemoteAddr: remote,
		Validation: &log.ValidationEvent{Valid: valid, Fields: p.fieldErrors()},
	})
	if !valid {
		return false, nil
	}

	p.tree.Update(p.root, req)
	p.logEvent(log.Event{
		RequestID:  requestID,
		Category:   log.CategoryUpdate,
		Source:     log.SourceHTTP,
		RemoteAddr: remote,
	})
	if err := p.storeLocked(log.SourceHTTP, requestID); err != nil {
		return false, err
	}
	return true, nil
}

// fieldErrors collects the error messages currently set on the tree.
func (p *Portal) fieldErrors() []log.FieldError {
	var fields []log.FieldError
	p.tree.Walk(p.root, func(h param.Handle) {
		if msg := p.tree.ErrorMessage(h); msg != "" {
			fields = append(fields, log.FieldError{ItemID: p.tree.ID(h), Message: msg})
		}
	})
	return fields
}

// authorized checks basic auth against the password parameter.
func (p *Portal) authorized(r *http.Request) bool {
	if p.auth == param.NoHandle {
		return true
	}
	want := p.tree.Value(p.auth)
	if want == "" {
		return true
	}
	user, pass, ok := r.BasicAuth()
	if !ok {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(p.config.AuthUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(want)) == 1
	return userOK && passOK
}

func (p *Portal) renderPage(req *HTTPRequest, dataArrived, saved bool) error {
	if err := req.SendContent(head(p.config.Title)); err != nil {
		return err
	}
	if saved {
		if err := req.SendContent(pageSaved); err != nil {
			return err
		}
		return req.SendContent(pageEnd)
	}
	if err := req.SendContent(pageFormStart); err != nil {
		return err
	}
	if err := p.tree.RenderHTML(p.root, dataArrived, req); err != nil {
		return err
	}
	if err := req.SendContent(pageFormEnd); err != nil {
		return err
	}
	return req.SendContent(pageEnd)
}

// healthResponse is the body of /health.
type healthResponse struct {
	Status        string    `json:"status"`
	ConfigVersion string    `json:"config_version"`
	Items         int       `json:"items"`
	StorageSize   int       `json:"storage_size"`
	SavedAt       time.Time `json:"saved_at,omitzero"`
}

// handleHealth reports whether the portal is initialized.
func (p *Portal) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p.mu.Lock()
	resp := healthResponse{
		Status:        "ok",
		ConfigVersion: p.config.ConfigVersion,
		Items:         p.tree.Len(),
		StorageSize:   p.size,
		SavedAt:       p.savedAt,
	}
	initialized := p.initialized
	p.mu.Unlock()

	status := http.StatusOK
	if !initialized {
		resp.Status = "starting"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
