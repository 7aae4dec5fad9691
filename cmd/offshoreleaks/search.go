package main

import (
	"github.com/spf13/cobra"

	"github.com/markramm/offshoreleaks-data-packages/internal/service"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search entities, officers, or intermediaries",
}

var entityFlags service.EntitySearchParams

var searchEntitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Search offshore entities",
	Example: `  offshoreleaks search entities --name "mossack" --jurisdiction panama
  offshoreleaks search entities --status active --incorporated-after 2000-01-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newClient().SearchEntities(cmd.Context(), entityFlags)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

var officerFlags service.OfficerSearchParams

var searchOfficersCmd = &cobra.Command{
	Use:   "officers",
	Short: "Search officers (people and organizations)",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newClient().SearchOfficers(cmd.Context(), officerFlags)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

var searchIntermediariesCmd = &cobra.Command{
	Use:   "intermediaries",
	Short: "Search intermediaries (law firms, banks, agents)",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newClient().SearchIntermediaries(cmd.Context(), officerFlags)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

var includeRelationships bool

var entityCmd = &cobra.Command{
	Use:   "entity <node-id>",
	Short: "Show one entity by node id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		details, err := newClient().GetEntityDetails(cmd.Context(), args[0], includeRelationships)
		if err != nil {
			return err
		}
		return printJSON(cmd, details)
	},
}

func init() {
	searchEntitiesCmd.Flags().StringVar(&entityFlags.Name, "name", "", "name substring (case-insensitive)")
	searchEntitiesCmd.Flags().StringVar(&entityFlags.Jurisdiction, "jurisdiction", "", "jurisdiction substring")
	searchEntitiesCmd.Flags().StringVar(&entityFlags.CountryCodes, "country-codes", "", "country codes substring")
	searchEntitiesCmd.Flags().StringVar(&entityFlags.CompanyType, "company-type", "", "exact company type")
	searchEntitiesCmd.Flags().StringVar(&entityFlags.Status, "status", "", "exact status")
	searchEntitiesCmd.Flags().StringVar(&entityFlags.IncorporationDateFrom, "incorporated-after", "", "incorporation date lower bound (YYYY-MM-DD)")
	searchEntitiesCmd.Flags().StringVar(&entityFlags.IncorporationDateTo, "incorporated-before", "", "incorporation date upper bound (YYYY-MM-DD)")
	searchEntitiesCmd.Flags().StringVar(&entityFlags.Source, "source", "", "exact leak source id")
	searchEntitiesCmd.Flags().IntVar(&entityFlags.Limit, "limit", 0, "maximum results per page")
	searchEntitiesCmd.Flags().IntVar(&entityFlags.Offset, "offset", 0, "pagination offset")

	for _, cmd := range []*cobra.Command{searchOfficersCmd, searchIntermediariesCmd} {
		cmd.Flags().StringVar(&officerFlags.Name, "name", "", "name substring (case-insensitive)")
		cmd.Flags().StringVar(&officerFlags.Countries, "countries", "", "countries substring")
		cmd.Flags().StringVar(&officerFlags.CountryCodes, "country-codes", "", "country codes substring")
		cmd.Flags().StringVar(&officerFlags.Source, "source", "", "exact leak source id")
		cmd.Flags().IntVar(&officerFlags.Limit, "limit", 0, "maximum results per page")
		cmd.Flags().IntVar(&officerFlags.Offset, "offset", 0, "pagination offset")
	}

	entityCmd.Flags().BoolVar(&includeRelationships, "relationships", true, "include the entity's relationships")

	searchCmd.AddCommand(searchEntitiesCmd, searchOfficersCmd, searchIntermediariesCmd)
	rootCmd.AddCommand(searchCmd, entityCmd)
}
