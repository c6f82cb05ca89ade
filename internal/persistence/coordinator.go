package persistence

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"survey-engine/internal/config"
	"survey-engine/internal/models"
	"survey-engine/internal/session"
)

// Persistence policies, selected by questionnaire configuration.
const (
	PolicyNone   = "none"
	PolicyLocal  = "localstorage"
	PolicyServer = "server"
	PolicyHybrid = "hybrid"
)

const defaultDebounce = 2 * time.Second

// LoadResult is what a load hands back to the caller. When the config asks
// for confirmation before restoring, the snapshot is surfaced with
// NeedsConfirmation set and nothing is applied.
type LoadResult struct {
	Snapshot          *models.Snapshot
	Source            string
	NeedsConfirmation bool
}

// Coordinator decides whether and how canonical answers are persisted, and
// reconciles persisted snapshots against live session state on load.
type Coordinator struct {
	policy       string
	askReloading bool
	debounce     time.Duration
	sess         *session.Session
	local        *LocalStore
	remote       *RemoteStore

	group singleflight.Group

	mu         sync.Mutex
	pending    models.AnswerSet
	pendingTmr *time.Timer
}

// Options bundles the pieces a coordinator needs beyond the questionnaire
// config: the session, where local snapshots live, and the remote store
// (nil unless the policy needs one).
type Options struct {
	LocalDir string
	Remote   *RemoteStore
}

func NewCoordinator(cfg *config.Normalized, sess *session.Session, opts Options) *Coordinator {
	c := &Coordinator{
		policy:       PolicyNone,
		sess:         sess,
		debounce:     defaultDebounce,
		local:        NewLocalStore(opts.LocalDir),
		remote:       opts.Remote,
		askReloading: cfg.Persistence.AskReloading,
	}
	if cfg.Persistence.Enabled {
		c.policy = cfg.Persistence.Type
	}
	if cfg.Persistence.DebounceMS > 0 {
		c.debounce = time.Duration(cfg.Persistence.DebounceMS) * time.Millisecond
	}
	return c
}

// SaveAnswers persists the set according to the policy. Local writes are
// best-effort: failures are logged and never surface to the UI path.
// Server failures are returned so the caller can show a transient notice.
func (c *Coordinator) SaveAnswers(ctx context.Context, set models.AnswerSet) error {
	switch c.policy {
	case PolicyLocal:
		if err := c.local.Save(c.sess.Folder(), set); err != nil {
			log.Printf("Local snapshot save failed for %s: %v", c.sess.Folder(), err)
		}
		return nil
	case PolicyServer:
		return c.remoteSave(ctx, set)
	case PolicyHybrid:
		if err := c.local.Save(c.sess.Folder(), set); err != nil {
			log.Printf("Local snapshot save failed for %s: %v", c.sess.Folder(), err)
		}
		c.scheduleRemoteSync(set)
		return nil
	default:
		return nil
	}
}

// scheduleRemoteSync arms (or re-arms) the debounce timer. Rapid
// sequential saves collapse into one remote write carrying the final set
// once the quiet period is reached; intermediate states are deliberately
// dropped.
func (c *Coordinator) scheduleRemoteSync(set models.AnswerSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = set.Clone()
	if c.pendingTmr != nil {
		c.pendingTmr.Stop()
	}
	c.pendingTmr = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		set := c.pending
		c.pending = nil
		c.pendingTmr = nil
		c.mu.Unlock()
		if set == nil {
			return
		}
		if err := c.remoteSave(context.Background(), set); err != nil {
			log.Printf("Remote snapshot sync failed for %s: %v", c.sess.Folder(), err)
		}
	})
}

// Flush forces a pending debounced sync to run now. Used on page exit and
// in tests.
func (c *Coordinator) Flush(ctx context.Context) error {
	c.mu.Lock()
	set := c.pending
	c.pending = nil
	if c.pendingTmr != nil {
		c.pendingTmr.Stop()
		c.pendingTmr = nil
	}
	c.mu.Unlock()
	if set == nil {
		return nil
	}
	return c.remoteSave(ctx, set)
}

// remoteSave collapses concurrent identical saves into one in-flight
// request; every waiting caller gets the original result.
func (c *Coordinator) remoteSave(ctx context.Context, set models.AnswerSet) error {
	payload, _ := json.Marshal(set)
	key := "save|" + c.sess.Folder() + "|" + string(payload)
	_, err, _ := c.group.Do(key, func() (any, error) {
		return nil, c.remote.Save(ctx, c.sess.Folder(), set)
	})
	return err
}

// LoadAnswers fetches the persisted snapshot per the policy. Hybrid tries
// the server first and falls back to the local snapshot on any remote
// failure or when the server has nothing.
func (c *Coordinator) LoadAnswers(ctx context.Context) (*LoadResult, error) {
	switch c.policy {
	case PolicyLocal:
		snap, err := c.local.Load(c.sess.Folder())
		if err != nil {
			log.Printf("Local snapshot load failed for %s: %v", c.sess.Folder(), err)
			return &LoadResult{Source: "none"}, nil
		}
		return c.result(snap, "local"), nil
	case PolicyServer:
		snap, err := c.remoteLoad(ctx)
		if err != nil {
			return &LoadResult{Source: "none"}, err
		}
		return c.result(snap, "server"), nil
	case PolicyHybrid:
		snap, err := c.remoteLoad(ctx)
		if err != nil || snap == nil {
			if err != nil {
				log.Printf("Remote snapshot load failed for %s, falling back to local: %v", c.sess.Folder(), err)
			}
			local, lerr := c.local.Load(c.sess.Folder())
			if lerr != nil {
				log.Printf("Local snapshot load failed for %s: %v", c.sess.Folder(), lerr)
				return &LoadResult{Source: "none"}, nil
			}
			return c.result(local, "local"), nil
		}
		return c.result(snap, "server"), nil
	default:
		return &LoadResult{Source: "none"}, nil
	}
}

func (c *Coordinator) remoteLoad(ctx context.Context) (*models.Snapshot, error) {
	key := "load|" + c.sess.Folder()
	v, err, _ := c.group.Do(key, func() (any, error) {
		return c.remote.Load(ctx, c.sess.Folder())
	})
	if err != nil {
		return nil, err
	}
	snap, _ := v.(*models.Snapshot)
	return snap, nil
}

func (c *Coordinator) result(snap *models.Snapshot, source string) *LoadResult {
	if snap == nil || len(snap.Answers) == 0 {
		return &LoadResult{Source: "none"}
	}
	return &LoadResult{
		Snapshot:          snap,
		Source:            source,
		NeedsConfirmation: c.askReloading,
	}
}

// ClearAnswers removes persisted state. Local is cleared immediately;
// remote clears are best-effort.
func (c *Coordinator) ClearAnswers(ctx context.Context) error {
	switch c.policy {
	case PolicyLocal:
		return c.local.Clear(c.sess.Folder())
	case PolicyServer:
		return c.remoteClear(ctx)
	case PolicyHybrid:
		if err := c.local.Clear(c.sess.Folder()); err != nil {
			log.Printf("Local snapshot clear failed for %s: %v", c.sess.Folder(), err)
		}
		if err := c.remoteClear(ctx); err != nil {
			log.Printf("Remote snapshot clear failed for %s: %v", c.sess.Folder(), err)
		}
		return nil
	default:
		return nil
	}
}

func (c *Coordinator) remoteClear(ctx context.Context) error {
	key := "clear|" + c.sess.Folder()
	_, err, _ := c.group.Do(key, func() (any, error) {
		return nil, c.remote.Clear(ctx, c.sess.Folder())
	})
	return err
}

// ResolveInitial decides which answers a fresh page load starts from. A
// found snapshot with at least one answer wins over URL-derived state,
// unless the config asks for confirmation first; then the URL answers stay
// active and the snapshot is only surfaced for the caller's prompt. With
// no snapshot, the URL answers are the fallback.
func (c *Coordinator) ResolveInitial(ctx context.Context, urlSet models.AnswerSet) (models.AnswerSet, *LoadResult, error) {
	res, err := c.LoadAnswers(ctx)
	if err != nil {
		return urlSet, &LoadResult{Source: "none"}, err
	}
	if res.Snapshot == nil {
		return urlSet, res, nil
	}
	if res.NeedsConfirmation {
		return urlSet, res, nil
	}
	return res.Snapshot.Answers, res, nil
}
