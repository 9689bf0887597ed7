package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. The real App
// type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Status(ctx context.Context, args []string) error
	Connect(ctx context.Context, args []string) error
	Reconnect(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Sign(ctx context.Context, args []string) error

	Dashboard(ctx context.Context, args []string) error

	Doctors(ctx context.Context, args []string) error
	Doctor(ctx context.Context, args []string) error
	AddDoctor(ctx context.Context, args []string) error
	EditDoctor(ctx context.Context, args []string) error
	DeleteDoctor(ctx context.Context, args []string) error
	DoctorAppointments(ctx context.Context, args []string) error

	Patients(ctx context.Context, args []string) error
	Patient(ctx context.Context, args []string) error
	AddPatient(ctx context.Context, args []string) error
	EditPatient(ctx context.Context, args []string) error
	DeletePatient(ctx context.Context, args []string) error
	PatientAppointments(ctx context.Context, args []string) error

	Appointments(ctx context.Context, args []string) error
	Appointment(ctx context.Context, args []string) error
	AddAppointment(ctx context.Context, args []string) error
	EditAppointment(ctx context.Context, args []string) error
	CancelAppointment(ctx context.Context, args []string) error
	CompleteAppointment(ctx context.Context, args []string) error
	DeleteAppointment(ctx context.Context, args []string) error

	Records(ctx context.Context, args []string) error
	Record(ctx context.Context, args []string) error
	AddRecord(ctx context.Context, args []string) error
	EditRecord(ctx context.Context, args []string) error
	DeleteRecord(ctx context.Context, args []string) error
}

const (
	helpSignedOut = "Available commands: status, connect, reconnect, help, exit"
	helpSignedIn  = `Available commands:
  session       status, whoami, sign <message>, reconnect, logout
  dashboard     dashboard
  doctors       doctors, doctor <id>, adddoctor, editdoctor <id>, deldoctor <id>, doctorappts <docID>
  patients      patients, patient <id>, addpatient, editpatient <id>, delpatient <id>, patientappts <patID>
  appointments  appointments, appointment <id>, addappt, editappt <id>, cancelappt <id>, completeappt <id>, delappt <id>
  records       records [patientId], record <id>, addrecord, editrecord <id>, delrecord <id>
  exit | quit`
)

// runREPL starts the read–eval–print loop of the console.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'; the remaining tokens are passed as args.
// Resource commands require a signed-in session. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ehr (%s)> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "status":
			_ = a.Status(ctx, args)
			continue
		case "connect":
			_ = a.Connect(ctx, args)
			continue
		case "reconnect":
			_ = a.Reconnect(ctx, args)
			continue
		}

		handler, ok := signedInCommand(a, cmd)
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			printlnFn("Not signed in. Run 'connect' first.")
			continue
		}
		_ = handler(ctx, args)
	}
}

func signedInCommand(a execIface, cmd string) (func(context.Context, []string) error, bool) {
	switch cmd {
	case "logout":
		return a.Logout, true
	case "whoami":
		return a.WhoAmI, true
	case "sign":
		return a.Sign, true
	case "dashboard":
		return a.Dashboard, true
	case "doctors":
		return a.Doctors, true
	case "doctor":
		return a.Doctor, true
	case "adddoctor":
		return a.AddDoctor, true
	case "editdoctor":
		return a.EditDoctor, true
	case "deldoctor":
		return a.DeleteDoctor, true
	case "doctorappts":
		return a.DoctorAppointments, true
	case "patients":
		return a.Patients, true
	case "patient":
		return a.Patient, true
	case "addpatient":
		return a.AddPatient, true
	case "editpatient":
		return a.EditPatient, true
	case "delpatient":
		return a.DeletePatient, true
	case "patientappts":
		return a.PatientAppointments, true
	case "appointments":
		return a.Appointments, true
	case "appointment":
		return a.Appointment, true
	case "addappt":
		return a.AddAppointment, true
	case "editappt":
		return a.EditAppointment, true
	case "cancelappt":
		return a.CancelAppointment, true
	case "completeappt":
		return a.CompleteAppointment, true
	case "delappt":
		return a.DeleteAppointment, true
	case "records":
		return a.Records, true
	case "record":
		return a.Record, true
	case "addrecord":
		return a.AddRecord, true
	case "editrecord":
		return a.EditRecord, true
	case "delrecord":
		return a.DeleteRecord, true
	}
	return nil, false
}
