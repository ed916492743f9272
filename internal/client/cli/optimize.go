package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/saferide/saferide/internal/client/api"
)

// Optimize prompts for a start point and pickup stops, then asks the backend
// for an ordered route plan.
func (a *App) Optimize(ctx context.Context) error {
	startLat, err := GetFloat(a.reader, "Start latitude", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	startLng, err := GetFloat(a.reader, "Start longitude", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	var stops []api.Waypoint
	for {
		label, err := GetSimpleText(a.reader, "Stop label (empty line to finish)", os.Stdout)
		if err != nil {
			return err
		}
		if label == "" {
			break
		}
		lat, err := GetFloat(a.reader, "Stop latitude", os.Stdout)
		if err != nil {
			printlnFn("Error:", err.Error())
			return err
		}
		lng, err := GetFloat(a.reader, "Stop longitude", os.Stdout)
		if err != nil {
			printlnFn("Error:", err.Error())
			return err
		}
		stops = append(stops, api.Waypoint{Lat: lat, Lng: lng, Label: label})
	}

	if len(stops) == 0 {
		printlnFn("No stops entered")
		return nil
	}

	plan, err := a.client.OptimizeRoute(ctx,
		api.Waypoint{Lat: startLat, Lng: startLng, Label: "start"}, stops)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	for i, leg := range plan.Legs {
		printlnFn(fmt.Sprintf("%d. %s -> %s  %.2fkm  %.1fmin",
			i+1, leg.From.Label, leg.To.Label, leg.DistanceKm, leg.DurationMin))
	}
	printlnFn(fmt.Sprintf("Total: %.2fkm, %.1fmin", plan.TotalDistanceKm, plan.TotalDurationMin))
	return nil
}
