package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"invoicer/pkg/models"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View/edit the user profile printed on invoices",
	Args:  cobra.NoArgs,
	RunE:  runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	_, st, err := openStore()
	if err != nil {
		return err
	}

	profile, err := st.Profiles.GetOrCreate()
	if err != nil {
		return err
	}

	fmt.Println("\nCurrent Profile:")
	fmt.Println(strings.Repeat("-", 40))
	rows := [][2]string{
		{"Full Name", profile.FullName},
		{"Address", profile.Address},
		{"Account Name", profile.AccountName},
		{"Account Number", profile.AccountNumber},
		{"IFSC Code", profile.IFSCCode},
		{"Bank Name", profile.BankName},
		{"Account Type", profile.AccountType},
		{"PAN", profile.PAN},
	}
	for _, row := range rows {
		value := row[1]
		if value == "" {
			value = "Not set"
		}
		fmt.Printf("%-20s : %s\n", row[0], value)
	}

	var update bool
	confirm := huh.NewConfirm().
		Title("Do you want to update your profile?").
		Value(&update)
	if err := confirm.Run(); err != nil {
		return err
	}
	if !update {
		return nil
	}

	if err := editProfile(profile); err != nil {
		return err
	}
	if err := st.Profiles.Update(profile); err != nil {
		return err
	}

	fmt.Println("Profile updated successfully")
	return nil
}

// editProfile runs the interactive profile form, mutating profile in
// place. Also used by generate when the profile is still the default.
func editProfile(profile *models.UserProfile) error {
	if profile.FullName == models.DefaultProfileName {
		profile.FullName = ""
	}
	if profile.Address == "Your Address" {
		profile.Address = ""
	}
	if profile.AccountType == "" {
		profile.AccountType = "SAVING"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Validate(required("full name")).
				Value(&profile.FullName),
			huh.NewText().
				Title("Address").
				Description("As it should appear on invoices").
				Value(&profile.Address),
		),
		huh.NewGroup(
			huh.NewInput().Title("Bank account name").Value(&profile.AccountName),
			huh.NewInput().Title("Bank account number").Value(&profile.AccountNumber),
			huh.NewInput().Title("IFSC code").Value(&profile.IFSCCode),
			huh.NewInput().Title("Bank name and branch").Value(&profile.BankName),
			huh.NewInput().Title("Account type").Value(&profile.AccountType),
			huh.NewInput().Title("PAN number").Value(&profile.PAN),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if profile.AccountName == "" {
		profile.AccountName = profile.FullName
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
