// Copyright 2025 Launchpage Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Seeds the sites database with deterministic demo pages so the API
// has data to serve without a model key. Run with:
//
//	go run scripts/seed-demo-sites.go -db ./sites.db
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/your-org/launchpage/internal/asset"
	"github.com/your-org/launchpage/internal/brief"
	"github.com/your-org/launchpage/internal/fallback"
	"github.com/your-org/launchpage/internal/storage"
)

func main() {
	dbPath := flag.String("db", "./sites.db", "Path to the sites database")
	flag.Parse()

	log.Println("🌱 Seeding demo sites...")

	store, err := storage.NewStore(*dbPath)
	if err != nil {
		log.Fatalf("❌ Failed to open sites store: %v", err)
	}
	defer store.Close()

	briefs := demoBriefs()
	ctx := context.Background()

	for _, raw := range briefs {
		b, err := brief.Normalize(raw)
		if err != nil {
			log.Fatalf("❌ Invalid demo brief %q: %v", raw.Name, err)
		}

		doc, err := fallback.Render(b)
		if err != nil {
			log.Fatalf("❌ Failed to render demo page for %q: %v", b.Name, err)
		}
		doc = asset.Inject(doc, b.LogoAsset, b.BackgroundAsset)

		site := storage.Site{
			ID:        uuid.NewString(),
			Name:      b.Name,
			Ticker:    b.Ticker,
			HTML:      doc,
			Fallback:  true,
			CreatedAt: time.Now().UTC(),
		}
		if err := store.SaveSite(ctx, site); err != nil {
			log.Fatalf("❌ Failed to save demo site %q: %v", b.Name, err)
		}

		log.Printf("✅ Seeded %s (%s) as %s", b.Name, b.Ticker, site.ID)
	}

	log.Printf("📊 Seeded %d demo sites into %s", len(briefs), *dbPath)
}

func demoBriefs() []brief.Raw {
	return []brief.Raw{
		{
			Name:        "Moonbeam",
			Ticker:      "BEAM",
			Description: "A community token about sending light across every chain. Holders vote on which ecosystem grants the treasury funds each month.",
			TwitterURL:  "https://twitter.com/moonbeam",
			TelegramURL: "https://t.me/moonbeam",
		},
		{
			Name:            "Glacier Finance",
			Ticker:          "GLCR",
			Description:     "Slow, steady, unstoppable. A staking protocol that rewards patience with compounding yield locked behind glacier-length vesting.",
			PrimaryColor:    "#7fdbff",
			AccentColor:     "#39cccc",
			BackgroundColor: "#001f3f",
		},
		{
			Name:        "Pocket Dragon",
			Ticker:      "PDRGN",
			Description: "The tiny dragon that hoards liquidity instead of gold. Every trade feeds the burn pit and shrinks the supply.",
			TwitterURL:  "https://twitter.com/pocketdragon",
		},
	}
}
