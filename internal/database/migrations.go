package database

import (
	"log"
	"log/slog"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func allModels() []any {
	return []any{
		&Conversation{}, &ChatMessage{}, &Profile{}, &ToolSession{}, &ContactMessage{}, &GlossaryTerm{},
	}
}

func GetMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	migrator := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "0",
			Migrate: func(txn *gorm.DB) error {
				return txn.AutoMigrate(allModels()...)
			},
		},
		{
			ID:      "1",
			Migrate: seedGlossary,
		},
	})

	migrator.InitSchema(func(txn *gorm.DB) error {
		// This is run by the migrator if no previous migration is detected.
		// It allows it to bypass running all the migrations sequentially and
		// just create the latest database state.

		log.Println("clean database detected, running full schema initialization")

		dbType := db.Dialector.Name()
		if dbType == "sqlite" || dbType == "sqlite3" {
			// Sqlite does not enable foreign key constraints by default, so we need to enable them manually.
			if err := txn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
				slog.Error("error enabling foreign keys for SQLite", "error", err)
			}
		}

		if err := txn.AutoMigrate(allModels()...); err != nil {
			return err
		}

		return seedGlossary(txn)
	})

	return migrator
}

// seedGlossary installs the plain-language glossary served on the site.
func seedGlossary(txn *gorm.DB) error {
	terms := []GlossaryTerm{
		{Term: "Debitor", Definition: "Det er dig - personen der skylder penge. Helt enkelt: du er debitor når du har gæld til nogen."},
		{Term: "Kreditor", Definition: "Den person eller virksomhed du skylder penge til. Det kan være din bank, et kreditkortselskab eller en butik."},
		{Term: "Inkasso", Definition: "Når en virksomhed hjælper med at inddrive penge, du skylder. Det er ikke farligt - det er bare en måde at få struktur på gælden."},
		{Term: "Afdragsordning", Definition: "En aftale om at betale din gæld tilbage i mindre beløb over længere tid. Som at betale 1000kr om måneden i stedet for 12.000kr på én gang."},
		{Term: "Betalingsaftale", Definition: "En aftale mellem dig og den du skylder penge, om hvordan og hvornår du betaler. Det er en måde at få mere tid på."},
		{Term: "Restance", Definition: "Penge du skylder, som skulle være betalt for længe siden. Restance betyder bare, at betalingen er forsinket."},
		{Term: "Påkrav", Definition: "Et brev der minder dig om, at du skylder penge. Det er første skridt, før sagen eventuelt går til inkasso."},
		{Term: "Rykker", Definition: "En venlig reminder om betaling. Hvis du får en rykker, betyder det bare, at virksomheden gerne vil have deres penge."},
	}

	return txn.Clauses(clause.OnConflict{DoNothing: true}).Create(&terms).Error
}
