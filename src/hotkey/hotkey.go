package hotkey

import (
	"log"
	"strings"

	hook "github.com/robotn/gohook"
)

// Listen registers a global hotkey and invokes callback whenever the
// combination is pressed. The callback runs on the hook goroutine; it
// should only post an event and return.
func Listen(combo string, callback func()) {
	keys := ParseCombo(combo)
	if len(keys) == 0 {
		log.Printf("hotkey: no valid keys in combination %q, listener not started", combo)
		return
	}
	log.Printf("hotkey: listening for %v", keys)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("hotkey: panic in hook goroutine: %v", r)
			}
		}()

		hook.Register(hook.KeyDown, keys, func(e hook.Event) {
			log.Printf("hotkey: %q pressed", combo)
			callback()
		})
		s := hook.Start()
		<-hook.Process(s)
	}()
}

// Stop tears down the global hook. Safe to call once at shutdown.
func Stop() {
	hook.End()
}

// ParseCombo splits a combination like "ctrl+shift+s" into the lowercase
// key names gohook expects. Unknown-but-plain tokens pass through so
// single letters and function keys work without a lookup table.
func ParseCombo(combo string) []string {
	var keys []string
	for _, part := range strings.Split(combo, "+") {
		key := normalizeKey(part)
		if key == "" {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func normalizeKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "control":
		return "ctrl"
	case "windows", "win", "super":
		return "cmd"
	case "option":
		return "alt"
	case "esc":
		return "escape"
	default:
		return key
	}
}
