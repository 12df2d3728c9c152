package main

import (
	"fmt"

	"github.com/rgehrsitz/hcpredict/internal/config"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/spf13/cobra"
)

// addProfileFlags registers the raw input flags shared by predict and compare
func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Request file (YAML or JSON) instead of profile flags")
	cmd.Flags().String("age", "", "Age in whole years (30-100)")
	cmd.Flags().String("region", "", "Region: USA, Europe, Asia or Turkey")
	cmd.Flags().String("conditions", "", "Comma separated chronic conditions")
	cmd.Flags().String("family-history", "", "Comma separated family history conditions")
	cmd.Flags().String("lifestyle", "", "Lifestyle score (0-10)")
	cmd.Flags().String("insurance", "", "Insured: yes or no")
}

// readRequest builds a request from --input, or from the profile flags
func readRequest(cmd *cobra.Command) (*config.Request, error) {
	if inputFile, _ := cmd.Flags().GetString("input"); inputFile != "" {
		return config.NewInputParser().LoadRequestFile(inputFile)
	}

	flag := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	req := &config.Request{Input: domain.RawInput{
		Age:           flag("age"),
		Region:        flag("region"),
		Conditions:    flag("conditions"),
		FamilyHistory: flag("family-history"),
		Lifestyle:     flag("lifestyle"),
		Insurance:     flag("insurance"),
	}}
	if req.Input.Age == "" && req.Input.Region == "" {
		return nil, fmt.Errorf("either --input or --age and --region are required")
	}
	return req, nil
}

// readProfile reads and normalizes the request
func (a *app) readProfile(cmd *cobra.Command) (*config.Request, domain.Profile, error) {
	req, err := readRequest(cmd)
	if err != nil {
		return nil, domain.Profile{}, err
	}
	profile, err := a.normalizer.Normalize(req.Input)
	if err != nil {
		return nil, domain.Profile{}, err
	}
	return req, profile, nil
}
