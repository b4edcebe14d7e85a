package main

import (
	"testing"
)

// main must return immediately when SKIP_SERVER_RUN is set, before touching
// .env, config or listeners.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	t.Setenv("PORT", "not-a-port")
	main()
}
