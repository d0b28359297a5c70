// Package event routes incoming document mutations to the trigger
// rules registered for their path. Rules are independent: a failing
// rule never stops its siblings, and each rule is individually
// retryable under the platform's at-least-once redelivery.
package event

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/foodiapp/foodi-triggers/model"
)

// HandlerFunc - a single trigger rule
type HandlerFunc func(ctx context.Context, ev *model.DocumentEvent) error

// DeliveryClaims records which (delivery, rule) pairs already ran, so
// redelivered events skip rules that succeeded. The redis cache
// satisfies this; tests use an in-memory implementation.
type DeliveryClaims interface {
	// SetOnce claims a key, returning true on first sight. The TTL
	// bounds the de-duplication window.
	SetOnce(key string, ttl time.Duration) (bool, error)
	// DeleteValue releases a claimed key.
	DeleteValue(key string) error
}

type rule struct {
	name     string
	template string
	change   model.ChangeKind
	fn       HandlerFunc
}

// Dispatcher matches events against registered path templates and runs
// every rule that applies.
type Dispatcher struct {
	rules    []rule
	claims   DeliveryClaims
	dedupTTL time.Duration
}

// NewDispatcher creates a dispatcher. When claims is non-nil and events
// carry a delivery id, redelivered events are de-duplicated per rule
// within the TTL window.
func NewDispatcher(claims DeliveryClaims, dedupTTL time.Duration) *Dispatcher {
	return &Dispatcher{claims: claims, dedupTTL: dedupTTL}
}

// Register adds a rule for a (path template, change kind) pair.
// Multiple rules may share a pair; they run independently.
func (d *Dispatcher) Register(template string, change model.ChangeKind, name string, fn HandlerFunc) {
	d.rules = append(d.rules, rule{name: name, template: template, change: change, fn: fn})
}

// Dispatch runs every rule matching the event. Rule errors are logged,
// collected, and returned combined so the platform redelivers; rules
// that already succeeded for this delivery are skipped on redelivery.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *model.DocumentEvent) error {
	var failed []string
	matched := 0

	for _, r := range d.rules {
		if r.change != ev.Change {
			continue
		}
		params, ok := MatchPath(r.template, ev.Path)
		if !ok {
			continue
		}
		matched++

		if d.alreadyDelivered(ev, r.name) {
			logrus.WithFields(logrus.Fields{"rule": r.name, "delivery": ev.ID}).
				Debug("duplicate delivery, skipping rule")
			continue
		}

		scoped := *ev
		scoped.Params = params
		if err := r.fn(ctx, &scoped); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"rule": r.name,
				"path": ev.Path,
			}).Error("trigger rule failed")
			d.forgetDelivery(ev, r.name)
			failed = append(failed, r.name)
		}
	}

	if matched == 0 {
		logrus.WithFields(logrus.Fields{"path": ev.Path, "change": ev.Change}).
			Debug("no rules registered for event")
	}
	if len(failed) > 0 {
		return errors.Errorf("rules failed: %s", strings.Join(failed, ", "))
	}
	return nil
}

func dedupKey(ev *model.DocumentEvent, ruleName string) string {
	return "trigger-delivery:" + ev.ID + ":" + ruleName
}

// alreadyDelivered marks the (delivery, rule) pair as seen and reports
// whether it had been seen before. First sight claims the key; if the
// rule then fails, forgetDelivery releases it for the redelivery.
func (d *Dispatcher) alreadyDelivered(ev *model.DocumentEvent, ruleName string) bool {
	if d.claims == nil || ev.ID == "" {
		return false
	}
	first, err := d.claims.SetOnce(dedupKey(ev, ruleName), d.dedupTTL)
	if err != nil {
		logrus.WithError(err).Warn("dedup cache unavailable, running rule")
		return false
	}
	return !first
}

func (d *Dispatcher) forgetDelivery(ev *model.DocumentEvent, ruleName string) {
	if d.claims == nil || ev.ID == "" {
		return
	}
	if err := d.claims.DeleteValue(dedupKey(ev, ruleName)); err != nil {
		logrus.WithError(err).Warn("unable to release dedup key")
	}
}

// MatchPath matches a concrete document path against a template like
// "posts/{postId}/post-likes/{userId}", binding wildcard segments.
func MatchPath(template, path string) (map[string]string, bool) {
	want := strings.Split(template, "/")
	have := strings.Split(path, "/")
	if len(want) != len(have) {
		return nil, false
	}
	params := make(map[string]string)
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if have[i] == "" {
				return nil, false
			}
			params[seg[1:len(seg)-1]] = have[i]
			continue
		}
		if seg != have[i] {
			return nil, false
		}
	}
	return params, true
}
