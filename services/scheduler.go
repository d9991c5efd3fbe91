package services

import (
	"log"
	"math/rand"
	"time"

	"fish-catch-system/models"

	"github.com/go-co-op/gocron/v2"
)

// Announcer publishes a freshly spawned fish to the external chat platform.
type Announcer interface {
	AnnounceSpawn(entity models.SpawnedEntity)
}

// SpawnScheduler runs a fixed global tick; on each tick every server with
// spawning active gets an independent Bernoulli draw. This is probabilistic
// throttling, not a per-server interval: the configurable frequency setting
// is stored and served but does not change the tick (kept from the original
// behavior, flagged at startup).
type SpawnScheduler struct {
	servers     *ServerRegistry
	spawns      *SpawnRegistry
	announcer   Announcer
	tick        time.Duration
	probability float64
	roll        func() float64

	sched gocron.Scheduler
}

func NewSpawnScheduler(servers *ServerRegistry, spawns *SpawnRegistry, announcer Announcer, tick time.Duration, probability float64) *SpawnScheduler {
	return &SpawnScheduler{
		servers:     servers,
		spawns:      spawns,
		announcer:   announcer,
		tick:        tick,
		probability: probability,
		roll:        rand.Float64,
	}
}

func (s *SpawnScheduler) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.sched = sched

	_, err = sched.NewJob(
		gocron.DurationJob(s.tick),
		gocron.NewTask(s.runTick),
	)
	if err != nil {
		return err
	}

	sched.Start()
	log.Printf("[Scheduler] Spawn tick every %s, probability %.2f per server", s.tick, s.probability)
	log.Println("[Scheduler] Note: per-server frequency setting is informational; spawn timing follows the global tick")
	return nil
}

func (s *SpawnScheduler) Stop() {
	if s.sched != nil {
		_ = s.sched.Shutdown()
	}
}

// runTick draws once per eligible server and hands winners to the announcer.
func (s *SpawnScheduler) runTick() {
	for serverID, cfg := range s.servers.Active() {
		if s.roll() >= s.probability {
			continue
		}
		entity := s.spawns.Spawn(serverID, cfg.ChannelID)
		log.Printf("🐟 [Scheduler] Spawned %s (%s) in server %s", entity.Type.Name, entity.ID, serverID)
		if s.announcer != nil {
			s.announcer.AnnounceSpawn(entity)
		}
	}
}
