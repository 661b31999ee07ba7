package discord

import (
	"log"
	"time"
)

// step mide cuanto tardo un handler. Discord corta la interaccion a los
// 3s si no respondimos, asi que conviene ver donde se va el tiempo.
func step(label string) func() {
	start := time.Now()
	return func() { log.Printf("[trace] %s tardo %s", label, time.Since(start)) }
}
