// Command seed fills the seats table with one demo vehicle per type.
// Existing seats of the seeded vehicles are replaced.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/iliyamo/seatmap/internal/config"
	"github.com/iliyamo/seatmap/internal/database"
	"github.com/iliyamo/seatmap/internal/model"
	"github.com/iliyamo/seatmap/internal/repository"
	"github.com/iliyamo/seatmap/internal/seed"
)

func main() {
	vehicleID := flag.Uint64("vehicle", 1, "vehicle id to seed for every type")
	flights := flag.Int("flight", 180, "number of flight seats")
	buses := flag.Int("bus", 40, "number of bus seats")
	trains := flag.Int("train", 72, "number of train berths")
	randSeed := flag.Int64("seed", time.Now().UnixNano(), "random seed for booked seats")
	flag.Parse()

	cfg := config.Load()
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatal(err)
	}

	repo := repository.NewSeatRepo(db)
	r := rand.New(rand.NewSource(*randSeed))
	counts := map[model.VehicleType]int{
		model.VehicleFlight: *flights,
		model.VehicleBus:    *buses,
		model.VehicleTrain:  *trains,
	}
	for _, vt := range []model.VehicleType{model.VehicleFlight, model.VehicleBus, model.VehicleTrain} {
		seats, err := seed.Seats(vt, counts[vt], seed.Options{BookedRatio: seed.DefaultBookedRatio(vt), Rand: r})
		if err != nil {
			log.Fatalf("seed %s: %v", vt, err)
		}
		if err := repo.DeleteByVehicle(ctx, vt, *vehicleID); err != nil {
			log.Fatalf("clear %s/%d: %v", vt, *vehicleID, err)
		}
		if err := repo.CreateBulk(ctx, vt, *vehicleID, seats); err != nil {
			log.Fatalf("insert %s/%d: %v", vt, *vehicleID, err)
		}
		booked := 0
		for _, s := range seats {
			if s.IsBooked {
				booked++
			}
		}
		log.Printf("seeded %s/%d: %d seats, %d booked", vt, *vehicleID, len(seats), booked)
	}
}
