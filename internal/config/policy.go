package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Amounts and rates are written as strings so they reach decimal.Decimal without
// passing through float64.
type policyFile struct {
	Earnings struct {
		StandardMonthlyHours string `mapstructure:"standard_monthly_hours"`
		StandardWorkingDays  string `mapstructure:"standard_working_days"`
		OvertimeMultiplier   string `mapstructure:"overtime_multiplier"`
	} `mapstructure:"earnings"`
	Statutory struct {
		PAYEBands       []taxBandFile `mapstructure:"paye_bands"`
		NSSFRate        string        `mapstructure:"nssf_rate"`
		NSSFUpperLimit  string        `mapstructure:"nssf_upper_limit"`
		SHIFRate        string        `mapstructure:"shif_rate"`
		HousingLevyRate string        `mapstructure:"housing_levy_rate"`
		PersonalRelief  string        `mapstructure:"personal_relief"`
	} `mapstructure:"statutory"`
}

type taxBandFile struct {
	Lower string `mapstructure:"lower"`
	Upper string `mapstructure:"upper"`
	Rate  string `mapstructure:"rate"`
}

// LoadPolicy reads the payroll policy from path. A missing file yields the
// built-in defaults; PAYROLL_<SECTION>_<KEY> variables override scalar values,
// e.g. PAYROLL_STATUTORY_SHIF_RATE.
func LoadPolicy(path string) (payroll.Policy, error) {
	v := viper.New()
	setPolicyDefaults(v)

	v.SetEnvPrefix("PAYROLL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return payroll.Policy{}, fmt.Errorf("read payroll policy %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return payroll.Policy{}, fmt.Errorf("stat payroll policy %s: %w", path, err)
		}
	}

	var file policyFile
	if err := v.Unmarshal(&file); err != nil {
		return payroll.Policy{}, fmt.Errorf("parse payroll policy: %w", err)
	}

	policy, err := file.toPolicy()
	if err != nil {
		return payroll.Policy{}, err
	}
	if err := policy.Validate(); err != nil {
		return payroll.Policy{}, fmt.Errorf("invalid payroll policy: %w", err)
	}
	return policy, nil
}

func setPolicyDefaults(v *viper.Viper) {
	v.SetDefault("earnings.standard_monthly_hours", "160")
	v.SetDefault("earnings.standard_working_days", "22")
	v.SetDefault("earnings.overtime_multiplier", "1.5")

	v.SetDefault("statutory.paye_bands", []map[string]string{
		{"lower": "0", "upper": "24000", "rate": "0.10"},
		{"lower": "24001", "upper": "32333", "rate": "0.25"},
		{"lower": "32334", "upper": "500000", "rate": "0.30"},
		{"lower": "500001", "upper": "800000", "rate": "0.325"},
		{"lower": "800001", "rate": "0.35"},
	})
	v.SetDefault("statutory.nssf_rate", "0.06")
	v.SetDefault("statutory.nssf_upper_limit", "36000")
	v.SetDefault("statutory.shif_rate", "0.0275")
	v.SetDefault("statutory.housing_levy_rate", "0.015")
	v.SetDefault("statutory.personal_relief", "2400")
}

func (f policyFile) toPolicy() (payroll.Policy, error) {
	var (
		p    payroll.Policy
		errs []error
	)
	parse := func(name, value string) decimal.Decimal {
		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a decimal", name, value))
		}
		return d
	}

	p.Earnings.StandardMonthlyHours = parse("standard_monthly_hours", f.Earnings.StandardMonthlyHours)
	p.Earnings.StandardWorkingDays = parse("standard_working_days", f.Earnings.StandardWorkingDays)
	p.Earnings.OvertimeMultiplier = parse("overtime_multiplier", f.Earnings.OvertimeMultiplier)

	s := f.Statutory
	p.Statutory.NSSFRate = parse("nssf_rate", s.NSSFRate)
	p.Statutory.NSSFUpperLimit = parse("nssf_upper_limit", s.NSSFUpperLimit)
	p.Statutory.SHIFRate = parse("shif_rate", s.SHIFRate)
	p.Statutory.HousingLevyRate = parse("housing_levy_rate", s.HousingLevyRate)
	p.Statutory.PersonalRelief = parse("personal_relief", s.PersonalRelief)

	for i, b := range s.PAYEBands {
		band := payroll.TaxBand{
			Lower: parse(fmt.Sprintf("paye_bands[%d].lower", i), b.Lower),
			Rate:  parse(fmt.Sprintf("paye_bands[%d].rate", i), b.Rate),
		}
		if strings.TrimSpace(b.Upper) != "" {
			upper := parse(fmt.Sprintf("paye_bands[%d].upper", i), b.Upper)
			band.Upper = &upper
		}
		p.Statutory.PAYEBands = append(p.Statutory.PAYEBands, band)
	}

	if len(errs) > 0 {
		return payroll.Policy{}, fmt.Errorf("invalid payroll policy: %w", errors.Join(errs...))
	}
	return p, nil
}
