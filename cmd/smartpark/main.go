package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/smartpark-app/smartpark-client/internal/auth"
	"github.com/smartpark-app/smartpark-client/internal/guidance"
	"github.com/smartpark-app/smartpark-client/internal/reservations"
	"github.com/smartpark-app/smartpark-client/internal/session"
	"github.com/smartpark-app/smartpark-client/pkg/config"
	"github.com/smartpark-app/smartpark-client/pkg/errors"
	"github.com/smartpark-app/smartpark-client/pkg/logger"
	"github.com/smartpark-app/smartpark-client/pkg/smartpark"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "smartpark"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "smartpark",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	client, err := smartpark.NewClient(
		cfg.Backend.BaseURL,
		smartpark.WithTimeout(cfg.Backend.HTTPTimeout),
		smartpark.WithLogger(logg),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create backend client", err)
		os.Exit(1)
	}

	sessions := session.NewStore()

	app := &app{
		in:       bufio.NewScanner(os.Stdin),
		auth:     auth.NewService(client, sessions),
		model:    reservations.NewModel(client, sessions),
		guide:    guidance.NewService(client),
		sessions: sessions,
	}
	app.run()
}

type app struct {
	in       *bufio.Scanner
	auth     *auth.Service
	model    *reservations.Model
	guide    *guidance.Service
	sessions *session.Store
}

func (a *app) run() {
	ctx := context.Background()
	fmt.Println("SmartPark client. Type 'help' for commands.")

	for {
		fmt.Print("> ")
		if !a.in.Scan() {
			return
		}
		fields := strings.Fields(a.in.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "help":
			a.printHelp()
		case "signup":
			a.signup(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.auth.Logout()
			fmt.Println("Signed out.")
		case "whoami":
			a.whoami()
		case "vehicles":
			a.vehicles(ctx)
		case "addvehicle":
			a.addVehicle(ctx)
		case "reserve":
			a.reserve(ctx)
		case "reservations":
			a.reservations(ctx)
		case "cancel":
			a.cancel(ctx, args)
		case "guidance":
			a.guidance(ctx, args)
		case "quit", "exit":
			return
		default:
			fmt.Printf("Unknown command %q. Type 'help'.\n", cmd)
		}
	}
}

func (a *app) printHelp() {
	fmt.Println(`Commands:
  signup          register a new account
  login           sign in
  logout          sign out
  whoami          show the signed-in user
  vehicles        list your vehicles
  addvehicle      register a vehicle
  reserve         create a reservation
  reservations    list active reservations
  cancel <id>     cancel a reservation
  guidance <slot> show the route to a slot
  quit            exit`)
}

func (a *app) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) signup(ctx context.Context) {
	input := auth.RegisterInput{
		Name:      a.prompt("Name"),
		Username:  a.prompt("Username"),
		Email:     a.prompt("Email"),
		ContactNo: a.prompt("Contact number"),
		Password:  a.prompt("Password"),
	}
	message, err := a.auth.Register(ctx, input)
	if err != nil {
		printError(err)
		return
	}
	fmt.Println(message)
}

func (a *app) login(ctx context.Context) {
	email := a.prompt("Email")
	password := a.prompt("Password")
	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Welcome, %s (%s)\n", user.Name, user.Email)
}

func (a *app) whoami() {
	user, ok := a.sessions.Current()
	if !ok {
		fmt.Println("Not signed in.")
		return
	}
	fmt.Printf("%s <%s>\n", user.Name, user.Email)
}

func (a *app) vehicles(ctx context.Context) {
	list, err := a.model.Vehicles(ctx)
	if err != nil {
		printError(err)
		return
	}
	if len(list) == 0 {
		fmt.Println("No vehicles found. Add a vehicle first.")
		return
	}
	for _, v := range list {
		fmt.Printf("  %d | %s | %s | %.1fm x %.1fm\n", v.ID, v.PlateNumber, v.VehicleType, v.LengthM, v.WidthM)
	}
}

func (a *app) addVehicle(ctx context.Context) {
	plate := a.prompt("Plate number")
	vehicleType := a.prompt("Vehicle type")
	length, err := strconv.ParseFloat(a.prompt("Length (m)"), 64)
	if err != nil {
		fmt.Println("Length must be a number.")
		return
	}
	width, err := strconv.ParseFloat(a.prompt("Width (m)"), 64)
	if err != nil {
		fmt.Println("Width must be a number.")
		return
	}
	message, err := a.model.AddVehicle(ctx, plate, vehicleType, length, width)
	if err != nil {
		printError(err)
		return
	}
	if message == "" {
		message = "Vehicle added"
	}
	fmt.Println(message)
}

func (a *app) reserve(ctx context.Context) {
	vehicleID, err := strconv.Atoi(a.prompt("Vehicle ID"))
	if err != nil {
		fmt.Println("Vehicle ID must be a number.")
		return
	}
	input := reservations.ReserveInput{
		VehicleID: vehicleID,
		StartTime: a.prompt("Start (YYYY-MM-DD HH:MM)"),
		EndTime:   a.prompt("End (YYYY-MM-DD HH:MM)"),
	}
	result, err := a.model.Reserve(ctx, input)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Slot allocated: %s (reservation %d)\n", result.Slot, result.ReservationID)
}

func (a *app) reservations(ctx context.Context) {
	if err := a.model.Refresh(ctx); err != nil {
		printError(err)
		return
	}
	items := a.model.Items()
	if len(items) == 0 {
		fmt.Println("No active reservations.")
		return
	}
	for _, item := range items {
		suffix := ""
		if item.Cancel != "" {
			suffix = fmt.Sprintf(" [cancel %s]", item.Cancel)
		}
		fmt.Printf("  #%d slot %s plate %s | %s -> %s%s\n",
			item.ID, item.Slot, item.Plate, item.StartTime, item.EndTime, suffix)
	}
}

func (a *app) cancel(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: cancel <reservation id>")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("Reservation ID must be a number.")
		return
	}
	if a.prompt("Cancel this reservation? (yes/no)") != "yes" {
		return
	}
	if err := a.model.Cancel(ctx, id); err != nil {
		printError(err)
		return
	}
	fmt.Println("Reservation cancelled.")
}

func (a *app) guidance(ctx context.Context, args []string) {
	slot := ""
	if len(args) > 0 {
		slot = args[0]
	}
	route, err := a.guide.Fetch(ctx, slot)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Route to %s (distance: %s)\n", route.Slot, route.Distance)
	for _, step := range route.Steps {
		fmt.Println("  " + step)
	}
}

// printError shows the failure message verbatim, the way the screens do.
func printError(err error) {
	if typed := errors.As(err); typed != nil {
		fmt.Println("Error:", typed.Message())
		return
	}
	fmt.Println("Error:", err)
}
