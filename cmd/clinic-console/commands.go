package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/clinicaflow/console/internal/domain/account"
	"github.com/clinicaflow/console/internal/platform/apiclient"
	"github.com/clinicaflow/console/internal/platform/listview"
)

// oneShot loads config, builds an app with a quiet logger and signs it in
// with the --token flag.
func oneShot(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a := newApp(cfg, newLogger("", "warn", os.Stderr), nil)
	token, _ := cmd.Flags().GetString("token")
	a.useToken(token)
	return a, nil
}

// loadError prefers the view-model's stored message so the CLI prints what
// a screen would show.
func loadError[T any](state listview.State[T], err error) error {
	if state.Status == listview.StatusError && state.Error != "" {
		return errors.New(state.Error)
	}
	return errors.New(apiclient.Message(err))
}

func printStats(w io.Writer, stats []listview.Stat) {
	for _, s := range stats {
		fmt.Fprintf(w, "%-18s %d\n", s.Title+":", s.Value)
	}
	fmt.Fprintln(w)
}

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print a token for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := oneShot(cmd)
			if err != nil {
				return err
			}
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			return runLogin(cmd.Context(), a, cmd.OutOrStdout(), account.Credentials{Email: email, Password: password})
		},
	}
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", os.Getenv("CLINIC_PASSWORD"), "Account password")
	return cmd
}

func runLogin(ctx context.Context, a *app, w io.Writer, creds account.Credentials) error {
	sess, err := a.account.Login(ctx, creds)
	if err != nil {
		return errors.New(apiclient.Message(err))
	}
	fmt.Fprintf(w, "Signed in as %s (%s)\n", sess.Name, sess.Role)
	fmt.Fprintf(w, "export CLINIC_TOKEN=%s\n", sess.Token)
	return nil
}

func queueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show the patient queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := oneShot(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			search, _ := cmd.Flags().GetString("search")
			status, _ := cmd.Flags().GetString("status")
			return runQueue(cmd.Context(), a, cmd.OutOrStdout(), search, status)
		},
	}
	cmd.Flags().String("search", "", "Match name, doctor or ticket number")
	cmd.Flags().String("status", listview.CategoryAll, "WAITING, CONSULTING, SERVING or COMPLETED")
	return cmd
}

func runQueue(ctx context.Context, a *app, w io.Writer, search, status string) error {
	a.board.Search(search)
	a.board.FilterStatus(status)
	if err := a.board.Mount(ctx); err != nil {
		return loadError(a.board.Model().State(), err)
	}

	snap := a.board.Snapshot()
	fmt.Fprintf(w, "Now serving: %s\n\n", snap.NowServing)
	printStats(w, snap.Stats)
	if len(snap.Entries) == 0 {
		fmt.Fprintln(w, "No patients in queue")
		return nil
	}
	fmt.Fprintf(w, "%-6s %-28s %-5s %-8s %-22s %-9s %s\n", "TICKET", "PATIENT", "AGE", "GENDER", "DOCTOR", "ARRIVED", "STATUS")
	for _, v := range snap.Entries {
		fmt.Fprintf(w, "%-6d %-28s %-5d %-8s %-22s %-9s %s\n", v.QueueNumber, v.Name, v.Age, v.Gender, v.AssignedTo, v.ArrivalTime, v.Status)
	}
	return nil
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show consultation history",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := oneShot(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			search, _ := cmd.Flags().GetString("search")
			doctor, _ := cmd.Flags().GetString("doctor")
			date, _ := cmd.Flags().GetString("date")
			return runHistory(cmd.Context(), a, cmd.OutOrStdout(), search, doctor, date)
		},
	}
	cmd.Flags().String("search", "", "Match patient, doctor, diagnosis or record number")
	cmd.Flags().String("doctor", listview.CategoryAll, "Doctor name")
	cmd.Flags().String("date", "", "today, thisWeek, thisMonth or YYYY-MM-DD")
	return cmd
}

func runHistory(ctx context.Context, a *app, w io.Writer, search, doctor, date string) error {
	a.history.Search(search)
	a.history.FilterDoctor(doctor)
	a.history.FilterDate(date)
	if err := a.history.Mount(ctx); err != nil {
		return loadError(a.history.Model().State(), err)
	}

	snap := a.history.Snapshot()
	printStats(w, snap.Stats)
	if len(snap.Consultations) == 0 {
		fmt.Fprintln(w, "No consultations found")
		return nil
	}
	fmt.Fprintf(w, "%-5s %-10s %-8s %-26s %-22s %s\n", "ID", "DATE", "TIME", "PATIENT", "DOCTOR", "DIAGNOSIS")
	for _, v := range snap.Consultations {
		fmt.Fprintf(w, "%-5d %-10s %-8s %-26s %-22s %s\n", v.ID, v.Date, v.Time, v.PatientName, v.Doctor, v.Diagnosis)
	}
	return nil
}

func patientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "List registered patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := oneShot(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			search, _ := cmd.Flags().GetString("search")
			gender, _ := cmd.Flags().GetString("gender")
			return runPatients(cmd.Context(), a, cmd.OutOrStdout(), search, gender)
		},
	}
	cmd.Flags().String("search", "", "Match name, contact or patient ID")
	cmd.Flags().String("gender", listview.CategoryAll, "Male or Female")
	return cmd
}

func runPatients(ctx context.Context, a *app, w io.Writer, search, gender string) error {
	a.patients.Search(search)
	a.patients.FilterGender(gender)
	if err := a.patients.Mount(ctx); err != nil {
		return loadError(a.patients.Model().State(), err)
	}

	snap := a.patients.Snapshot()
	printStats(w, snap.Stats)
	if len(snap.Patients) == 0 {
		fmt.Fprintln(w, "No patients found")
		return nil
	}
	fmt.Fprintf(w, "%-5s %-28s %-5s %-8s %-13s %s\n", "ID", "NAME", "AGE", "GENDER", "CONTACT", "ADDRESS")
	for _, p := range snap.Patients {
		fmt.Fprintf(w, "%-5d %-28s %-5d %-8s %-13s %s\n", p.ID, p.FullName(), p.Age, p.Gender, p.ContactNo, p.Address)
	}
	return nil
}

func staffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Show the medical staff directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := oneShot(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			search, _ := cmd.Flags().GetString("search")
			role, _ := cmd.Flags().GetString("role")
			status, _ := cmd.Flags().GetString("status")
			return runStaff(cmd.Context(), a, cmd.OutOrStdout(), search, role, status)
		},
	}
	cmd.Flags().String("search", "", "Match name, email, specialty or staff ID")
	cmd.Flags().String("role", listview.CategoryAll, "Doctor, Nurse, ...")
	cmd.Flags().String("status", listview.CategoryAll, "Available, Busy or Off Duty")
	return cmd
}

func runStaff(ctx context.Context, a *app, w io.Writer, search, role, status string) error {
	a.staff.Search(search)
	a.staff.FilterRole(role)
	a.staff.FilterStatus(status)
	if err := a.staff.Mount(ctx); err != nil {
		return loadError(a.staff.Model().State(), err)
	}

	snap := a.staff.Snapshot()
	printStats(w, snap.Stats)
	if len(snap.Members) == 0 {
		fmt.Fprintln(w, "No staff members found")
		return nil
	}
	fmt.Fprintf(w, "%-5s %-26s %-10s %-20s %-12s %s\n", "ID", "NAME", "ROLE", "SPECIALTY", "CONTACT", "STATUS")
	for _, m := range snap.Members {
		fmt.Fprintf(w, "%-5d %-26s %-10s %-20s %-12s %s\n", m.ID, m.Name, m.Role, m.Specialty, m.Contact, m.Status)
	}
	return nil
}
