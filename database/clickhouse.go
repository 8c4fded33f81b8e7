package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/uptrace/go-clickhouse/ch"

	"kucukaslan/bridge/config"
	"kucukaslan/bridge/domain"
)

var clickHouseDB *ch.DB

// InitClickHouse initializes the ClickHouse database connection
func InitClickHouse(cfg *config.ClickHouseConfig) error {
	dsn := cfg.GetClickHouseDSN()

	// Connect without TLS since ClickHouse native protocol doesn't use TLS by default
	db := ch.Connect(
		ch.WithDSN(dsn),
		ch.WithInsecure(true), // Disable TLS for native protocol
	)

	ctx := context.Background()

	if err := InitTables(ctx, db); err != nil {
		return fmt.Errorf("failed to initialize collector tables: %w", err)
	}

	clickHouseDB = db
	log.Println("ClickHouse connection established successfully")

	return nil
}

// CloseClickHouse closes the ClickHouse database connection
func CloseClickHouse() error {
	if clickHouseDB != nil {
		if err := clickHouseDB.Close(); err != nil {
			return fmt.Errorf("failed to close ClickHouse connection: %w", err)
		}
		log.Println("ClickHouse connection closed")
	}
	return nil
}

// InitTables creates the events and privacy rule audit tables if they don't exist
func InitTables(ctx context.Context, db *ch.DB) error {
	if _, err := db.NewCreateTable().
		Model((*Event)(nil)).
		Engine("MergeTree()").
		Order("ingested_at, event_name").
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}

	_, err := db.NewCreateTable().
		Model((*RuleChange)(nil)).
		Engine("MergeTree()").
		Order("applied_at").
		IfNotExists().
		Exec(ctx)
	return err
}

// ClickHouseHealthCheck verifies that the ClickHouse connection is alive
func ClickHouseHealthCheck(ctx context.Context) error {
	if clickHouseDB == nil {
		return fmt.Errorf("ClickHouse connection is not initialized")
	}
	return clickHouseDB.Ping(ctx)
}

// GetClickHouseDB returns the ClickHouse database instance
func GetClickHouseDB() ClickHouseDB {
	return ClickHouseDB{clickHouseDB}
}

// Event represents the events table structure for ClickHouse ORM
type Event struct {
	ch.CHModel    `ch:"table:events,partition:toYYYYMMDD(ingested_at)"`
	EventID       string    `ch:"event_id"`
	EventName     string    `ch:"event_name,lc"`
	Site          int32     `ch:"site"`
	CollectDomain string    `ch:"collect_domain,lc"`
	VisitorIDType string    `ch:"visitor_id_type,lc"`
	Properties    string    `ch:"properties,type:String"`
	IngestedAt    time.Time `ch:"ingested_at,default:now()"`
}

// EventColumnar: events in columnar format for batch inserts
type EventColumnar struct {
	ch.CHModel    `ch:"table:events,partition:toYYYYMMDD(ingested_at),columnar"`
	EventID       []string    `ch:"event_id"`
	EventName     []string    `ch:"event_name,lc"`
	Site          []int32     `ch:"site"`
	CollectDomain []string    `ch:"collect_domain,lc"`
	VisitorIDType []string    `ch:"visitor_id_type,lc"`
	Properties    []string    `ch:"properties,type:String"`
	IngestedAt    []time.Time `ch:"ingested_at,default:now()"`
}

// RuleChange represents the privacy rule audit table structure
type RuleChange struct {
	ch.CHModel `ch:"table:privacy_rule_changes"`
	Kind       string    `ch:"kind,lc"`
	Include    bool      `ch:"does_include"`
	Names      []string  `ch:"names,array"`
	Modes      []string  `ch:"modes,array"`
	EventScope []string  `ch:"event_scope,array"`
	AppliedAt  time.Time `ch:"applied_at,default:now()"`
}

// InsertEvents saves a batch of typed events using native columnar insert format.
// Data is sent column-by-column as arrays, optimizing for ClickHouse's columnar
// storage engine. The sink configuration is stamped onto every row.
func (c ClickHouseDB) InsertEvents(ctx context.Context, events []domain.Event, cfg domain.SinkConfig) error {
	if c.DB == nil {
		return fmt.Errorf("database connection is nil")
	}
	if len(events) == 0 {
		return fmt.Errorf("no events to insert")
	}

	batchSize := len(events)
	now := time.Now()

	eventIDs := make([]string, 0, batchSize)
	eventNames := make([]string, 0, batchSize)
	sites := make([]int32, 0, batchSize)
	collectDomains := make([]string, 0, batchSize)
	visitorIDTypes := make([]string, 0, batchSize)
	properties := make([]string, 0, batchSize)
	ingestedAt := make([]time.Time, 0, batchSize)

	for _, event := range events {
		propsJSON, err := event.PropertiesJSON()
		if err != nil {
			return fmt.Errorf("failed to serialize properties of event %s: %w", event.ID, err)
		}

		eventIDs = append(eventIDs, event.ID)
		eventNames = append(eventNames, event.Name)
		sites = append(sites, int32(cfg.Site))
		collectDomains = append(collectDomains, cfg.CollectDomain)
		visitorIDTypes = append(visitorIDTypes, cfg.VisitorIDType.String())
		properties = append(properties, propsJSON)
		ingestedAt = append(ingestedAt, now)
	}

	columnarModel := &EventColumnar{
		EventID:       eventIDs,
		EventName:     eventNames,
		Site:          sites,
		CollectDomain: collectDomains,
		VisitorIDType: visitorIDTypes,
		Properties:    properties,
		IngestedAt:    ingestedAt,
	}

	_, err := c.DB.NewInsert().
		Model(columnarModel).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to columnar insert events: %w", err)
	}

	return nil
}

// InsertRuleChange appends one applied privacy mutation to the audit table
func (c ClickHouseDB) InsertRuleChange(ctx context.Context, change domain.RuleChange) error {
	if c.DB == nil {
		return fmt.Errorf("database connection is nil")
	}

	row := &RuleChange{
		Kind:       change.Kind.String(),
		Include:    change.Include,
		Names:      change.Names,
		Modes:      change.Modes,
		EventScope: change.EventScope,
		AppliedAt:  time.Now(),
	}

	_, err := c.DB.NewInsert().
		Model(row).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert privacy rule change: %w", err)
	}

	return nil
}

type ClickHouseDB struct {
	*ch.DB
}
