package spawn

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"shopspawn/internal/model"
	pg "shopspawn/internal/postgres"
	"shopspawn/internal/records"
	redis_client "shopspawn/internal/redis"
	"shopspawn/internal/service/storage"
	"shopspawn/internal/transform"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNotLoaded is returned by lookups before any spawn set was loaded.
var ErrNotLoaded = errors.New("spawn set not loaded")

// Set is one complete, consistent spawn set.
type Set struct {
	RunID       string
	Transform   *transform.Transform
	Consumables []model.ConsumableSpawn
	Equipment   []model.EquipmentSpawn
}

// Sources lists where InitService may find a spawn set, tried in order:
// Redis snapshot, latest PostgreSQL run, then the JSON files.
type Sources struct {
	Redis         *redis.Client
	DB            *gorm.DB
	FoodPath      string
	EquipmentPath string
}

type SpawnService struct {
	consumables storage.Storage[string, model.ConsumableSpawn]
	equipment   storage.Storage[string, model.EquipmentSpawn]

	mu              sync.RWMutex
	runID           string
	transform       *transform.Transform
	consumableOrder []string
	equipmentOrder  []string
	loadedAt        time.Time
	initialized     bool
}

var (
	spawnServiceInstance *SpawnService
	spawnServiceOnce     sync.Once
)

// GetSpawnService returns the process-wide service.
func GetSpawnService() *SpawnService {
	spawnServiceOnce.Do(func() {
		spawnServiceInstance = NewSpawnService()
	})
	return spawnServiceInstance
}

func NewSpawnService() *SpawnService {
	return &SpawnService{
		consumables: storage.NewMemoryStorage[string, model.ConsumableSpawn](),
		equipment:   storage.NewMemoryStorage[string, model.EquipmentSpawn](),
	}
}

// InitService loads the first spawn set any source can provide.
func (s *SpawnService) InitService(ctx context.Context, src Sources) error {
	s.mu.RLock()
	initialized := s.initialized
	s.mu.RUnlock()
	if initialized {
		return nil
	}

	log.Println("Initializing SpawnService...")
	startTime := time.Now()

	set, origin, err := loadFirst(ctx, src)
	if err != nil {
		return err
	}
	if err := s.Load(set); err != nil {
		return err
	}

	log.Printf("Initialization complete: %d consumables, %d equipment from %s, took %v",
		len(set.Consumables), len(set.Equipment), origin, time.Since(startTime))
	return nil
}

func loadFirst(ctx context.Context, src Sources) (Set, string, error) {
	var errs []error

	if src.Redis != nil {
		snap, err := redis_client.LoadSnapshot(ctx, src.Redis)
		if err == nil {
			set, err := setFromRecord(snap.RunID, snap.Transform, snap.Consumables, snap.Equipment)
			if err == nil {
				return set, "redis", nil
			}
			errs = append(errs, err)
		} else {
			errs = append(errs, err)
		}
	}

	if src.DB != nil {
		run, err := pg.LoadLatestRun(ctx, src.DB)
		if err == nil {
			set, err := setFromRecord(run.ID, run.Transform, run.Consumables, run.Equipment)
			if err == nil {
				return set, "postgres", nil
			}
			errs = append(errs, err)
		} else {
			errs = append(errs, err)
		}
	}

	if src.FoodPath != "" && src.EquipmentPath != "" {
		set, err := LoadFiles(src.FoodPath, src.EquipmentPath)
		if err == nil {
			return set, "files", nil
		}
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return Set{}, "", errors.New("no spawn source configured")
	}
	return Set{}, "", fmt.Errorf("no spawn source available: %w", errors.Join(errs...))
}

// LoadFiles reads the two output documents. Both must carry the same transform.
func LoadFiles(foodPath, equipmentPath string) (Set, error) {
	food, err := records.LoadConsumableDocument(foodPath)
	if err != nil {
		return Set{}, err
	}
	equip, err := records.LoadEquipmentDocument(equipmentPath)
	if err != nil {
		return Set{}, err
	}
	if food.Transform.ScaleX != equip.Transform.ScaleX || food.Transform.ScaleZ != equip.Transform.ScaleZ ||
		food.Transform.OffsetX != equip.Transform.OffsetX || food.Transform.OffsetZ != equip.Transform.OffsetZ {
		return Set{}, fmt.Errorf("%s and %s were generated with different transforms", foodPath, equipmentPath)
	}
	return setFromRecord("", food.Transform, food.Spawns, equip.Spawns)
}

func setFromRecord(runID string, rec transform.Record, consumables []model.ConsumableSpawn, equipment []model.EquipmentSpawn) (Set, error) {
	tr, err := transform.FromRecord(rec)
	if err != nil {
		return Set{}, err
	}
	return Set{RunID: runID, Transform: tr, Consumables: consumables, Equipment: equipment}, nil
}

// Load replaces the served spawn set.
func (s *SpawnService) Load(set Set) error {
	if set.Transform == nil {
		return errors.New("spawn set has no transform")
	}

	consumables := make(map[string]model.ConsumableSpawn, len(set.Consumables))
	consumableOrder := make([]string, 0, len(set.Consumables))
	for _, c := range set.Consumables {
		if _, dup := consumables[c.ID]; dup {
			return fmt.Errorf("duplicate consumable spawn id %s", c.ID)
		}
		consumables[c.ID] = c
		consumableOrder = append(consumableOrder, c.ID)
	}

	equipment := make(map[string]model.EquipmentSpawn, len(set.Equipment))
	equipmentOrder := make([]string, 0, len(set.Equipment))
	for _, e := range set.Equipment {
		if _, dup := equipment[e.ID]; dup {
			return fmt.Errorf("duplicate equipment spawn id %s", e.ID)
		}
		equipment[e.ID] = e
		equipmentOrder = append(equipmentOrder, e.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.consumables.Replace(consumables)
	s.equipment.Replace(equipment)
	s.consumableOrder = consumableOrder
	s.equipmentOrder = equipmentOrder
	s.runID = set.RunID
	s.transform = set.Transform
	s.loadedAt = time.Now()
	s.initialized = true
	return nil
}

// Publish writes the current set to Redis so other instances can pick it up.
func (s *SpawnService) Publish(ctx context.Context, client *redis.Client) error {
	s.mu.RLock()
	if !s.initialized {
		s.mu.RUnlock()
		return ErrNotLoaded
	}
	snap := redis_client.Snapshot{
		RunID:       s.runID,
		Transform:   s.transform.Record(),
		Consumables: s.consumablesLocked(),
		Equipment:   s.equipmentLocked(),
	}
	s.mu.RUnlock()

	return redis_client.SaveSnapshot(ctx, client, snap)
}

// Transform returns the transform of the loaded set.
func (s *SpawnService) Transform() (*transform.Transform, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return nil, ErrNotLoaded
	}
	return s.transform, nil
}

// Info describes the loaded set.
type Info struct {
	RunID       string
	Consumables int
	Equipment   int
	LoadedAt    time.Time
}

func (s *SpawnService) Info() (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return Info{}, ErrNotLoaded
	}
	return Info{
		RunID:       s.runID,
		Consumables: s.consumables.Count(),
		Equipment:   s.equipment.Count(),
		LoadedAt:    s.loadedAt,
	}, nil
}

// Consumables returns the consumable spawns in generation order.
func (s *SpawnService) Consumables() []model.ConsumableSpawn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.consumablesLocked()
}

// Equipment returns the equipment spawns in generation order.
func (s *SpawnService) Equipment() []model.EquipmentSpawn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.equipmentLocked()
}

func (s *SpawnService) consumablesLocked() []model.ConsumableSpawn {
	result := make([]model.ConsumableSpawn, 0, len(s.consumableOrder))
	for _, id := range s.consumableOrder {
		if c, ok := s.consumables.Get(id); ok {
			result = append(result, c)
		}
	}
	return result
}

func (s *SpawnService) equipmentLocked() []model.EquipmentSpawn {
	result := make([]model.EquipmentSpawn, 0, len(s.equipmentOrder))
	for _, id := range s.equipmentOrder {
		if e, ok := s.equipment.Get(id); ok {
			result = append(result, e)
		}
	}
	return result
}

// Consumable looks up a consumable spawn by id.
func (s *SpawnService) Consumable(id string) (model.ConsumableSpawn, bool) {
	return s.consumables.Get(id)
}

// EquipmentByID looks up an equipment spawn by id.
func (s *SpawnService) EquipmentByID(id string) (model.EquipmentSpawn, bool) {
	return s.equipment.Get(id)
}

// Refresh loads the Redis snapshot when its run id differs from the served one.
func (s *SpawnService) Refresh(ctx context.Context, client *redis.Client) (bool, error) {
	snap, err := redis_client.LoadSnapshot(ctx, client)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	current := s.runID
	initialized := s.initialized
	s.mu.RUnlock()
	if initialized && snap.RunID == current {
		return false, nil
	}

	set, err := setFromRecord(snap.RunID, snap.Transform, snap.Consumables, snap.Equipment)
	if err != nil {
		return false, err
	}
	if err := s.Load(set); err != nil {
		return false, err
	}
	return true, nil
}
