package catalog

import "go.trai.ch/comfortmap/internal/core/domain"

// Shared input descriptions.
const (
	descResultSQL = "A SQLite file that was generated by EnergyPlus and contains " +
		"hourly or sub-hourly thermal comfort results."
	descEnclosure = "A JSON file containing information about the radiant " +
		"enclosure that sensor points belong to."
	descSunUpHours = "A sun-up-hours.txt file output by Radiance and aligns with the " +
		"input irradiance files."
	descSolarCal = "A SolarCalParameter string to customize the assumptions of " +
		"the SolarCal model."
	descAirSpeed = "A single number for air speed in m/s or a string of a JSON array " +
		"with numbers that align with the result-sql reporting period. This " +
		"will be used for all indoor comfort evaluation."
	descRunPeriodMap = "An AnalysisPeriod string to set the start and end dates of the " +
		`analysis (eg. "6/21 to 9/21 between 8 and 16 @1"). If None, the analysis ` +
		"will be for the entire result_sql run period."
	descRunPeriodAnnual = "An AnalysisPeriod string to set the start and end dates of the " +
		`analysis (eg. "6/21 to 9/21 between 8 and 16 @1"). If unspecified, results ` +
		"will be annual."
	descConditionMap = "CSV file containing a map of comfort conditions for each " +
		"sensor and step of the analysis. -1 indicates unacceptably cold conditions. " +
		"+1 indicates unacceptably hot conditions. 0 indicates neutral (comfortable) " +
		"conditions."
	descResultFolder = "Folder containing all of the output CSV files."

	defaultSolarCal = "--posture seated --sharp 135 --absorptivity 0.7 --emissivity 0.95"
)

var (
	extSQL  = []string{"sql", "db", "sqlite"}
	extJSON = []string{"json"}
	extEPW  = []string{"epw"}
	extIll  = []string{"ill", "irr"}
)

func file(name, path, desc string, exts []string) domain.InputSpec {
	return domain.InputSpec{Name: name, Kind: domain.KindFile, Path: path, Extensions: exts, Description: desc}
}

func folder(name, path, desc string) domain.InputSpec {
	return domain.InputSpec{Name: name, Kind: domain.KindFolder, Path: path, Description: desc}
}

// str declares a string input with a default. An empty def is an explicit empty default.
func str(name, def, desc string, enum ...string) domain.InputSpec {
	return domain.InputSpec{Name: name, Kind: domain.KindString, Default: &def, Enum: enum, Description: desc}
}

func required(name, desc string, enum ...string) domain.InputSpec {
	return domain.InputSpec{Name: name, Kind: domain.KindString, Enum: enum, Description: desc}
}

func optional(in domain.InputSpec) domain.InputSpec {
	in.Optional = true
	return in
}

func outFile(name, path, desc string) domain.OutputSpec {
	return domain.OutputSpec{Name: name, Kind: domain.KindFile, Path: path, Description: desc}
}

func outFolder(name, path, desc string) domain.OutputSpec {
	return domain.OutputSpec{Name: name, Kind: domain.KindFolder, Path: path, Description: desc}
}

// irradianceInputs are the file inputs shared by the PMV, Adaptive and UTCI maps.
func irradianceInputs(epwDesc string) []domain.InputSpec {
	return []domain.InputSpec{
		file("result_sql", "result.sql", descResultSQL, extSQL),
		file("enclosure_info", "enclosure_info.json", descEnclosure, extJSON),
		file("epw", "weather.epw", epwDesc, extEPW),
		file("total_irradiance", "total.ill",
			"A Radiance .ill containing total irradiance for each sensor in the enclosure-info.", extIll),
		file("direct_irradiance", "direct.ill",
			"A Radiance .ill containing direct irradiance for each sensor in the enclosure-info.", extIll),
		file("ref_irradiance", "ref.ill",
			"A Radiance .ill containing ground-reflected irradiance for each sensor in the enclosure-info.", extIll),
		file("sun_up_hours", "sun-up-hours.txt", descSunUpHours, nil),
	}
}

// irradianceArgs are the leading positional and flag arguments shared by the comfort maps.
func irradianceArgs(subcommand string) []domain.Arg {
	return []domain.Arg{
		domain.Lit("map"),
		domain.Lit(subcommand),
		domain.Path("result_sql"),
		domain.Path("enclosure_info"),
		domain.Path("epw"),
		domain.FlagPath("--total-irradiance", "total_irradiance"),
		domain.FlagPath("--direct-irradiance", "direct_irradiance"),
		domain.FlagPath("--ref-irradiance", "ref_irradiance"),
		domain.FlagPath("--sun-up-hours", "sun_up_hours"),
	}
}

func comfortOutputs(temperatureDesc, intensityName, intensityDesc string) []domain.OutputSpec {
	return []domain.OutputSpec{
		outFolder("result_folder", "output", descResultFolder),
		outFile("temperature_map", "output/temperature.csv", temperatureDesc),
		outFile("condition_map", "output/condition.csv", descConditionMap),
		outFile(intensityName, "output/condition_intensity.csv", intensityDesc),
	}
}

func pmvMap() *domain.Descriptor {
	inputs := irradianceInputs("Weather file used to estimate conditions for any outdoor " +
		"sensors and to compute sun positions.")
	inputs = append(inputs,
		str("air_speed", "0.1", descAirSpeed),
		str("met_rate", "1.1", "A single number for metabolic rate in met or a string of a "+
			"JSON array with numbers that align with the result-sql reporting period."),
		str("clo_value", "0.7", "A single number for clothing level in clo or a string of a JSON "+
			"array with numbers that align with the result-sql reporting period."),
		str("solarcal_par", defaultSolarCal, descSolarCal),
		str("comfort_par", "--ppd-threshold 10", "A PMVParameter string to customize the assumptions of "+
			"the PMV comfort model."),
		str("run_period", "", descRunPeriodMap),
		str("write_set_map", "write-op-map", "A switch to note whether the output temperature CSV should "+
			"record Operative Temperature or Standard Effective Temperature (SET).",
			"write-op-map", "write-set-map"),
	)

	command := append(irradianceArgs("pmv"),
		domain.FlagValue("--air-speed", "air_speed"),
		domain.FlagValue("--met-rate", "met_rate"),
		domain.FlagValue("--clo-value", "clo_value"),
		domain.FlagValue("--solarcal-par", "solarcal_par"),
		domain.FlagValue("--comfort-par", "comfort_par"),
		domain.FlagValue("--run-period", "run_period"),
		domain.Switch("write_set_map"),
		domain.Flag("--folder", "output"),
	)

	return &domain.Descriptor{
		Name:    "pmv-map",
		Summary: "Get CSV files with maps of PMV comfort from EnergyPlus and Radiance results.",
		Program: domain.DefaultProgram,
		Inputs:  inputs,
		Command: command,
		Outputs: comfortOutputs(
			"CSV file containing a map of Operative Temperature (To) or Standard Effective "+
				"Temperature (SET) for each sensor and step of the analysis.",
			"pmv_map",
			"CSV file containing the Predicted Mean Vote (PMV) for each sensor and step of the analysis.",
		),
	}
}

func adaptiveMap() *domain.Descriptor {
	inputs := irradianceInputs("Weather file used to estimate conditions for any outdoor " +
		"sensors and to provide prevailing outdoor temperature for the adaptive comfort model.")
	inputs = append(inputs,
		str("air_speed", "0.1", descAirSpeed),
		str("solarcal_par", defaultSolarCal, descSolarCal),
		str("comfort_par", "--standard ASHRAE-55", "An AdaptiveParameter string to customize the "+
			"assumptions of the Adaptive comfort model."),
		str("run_period", "", descRunPeriodMap),
	)

	command := append(irradianceArgs("adaptive"),
		domain.FlagValue("--air-speed", "air_speed"),
		domain.FlagValue("--solarcal-par", "solarcal_par"),
		domain.FlagValue("--comfort-par", "comfort_par"),
		domain.FlagValue("--run-period", "run_period"),
		domain.Flag("--folder", "output"),
	)

	return &domain.Descriptor{
		Name:    "adaptive-map",
		Summary: "Get CSV files with maps of Adaptive comfort from EnergyPlus and Radiance results.",
		Program: domain.DefaultProgram,
		Inputs:  inputs,
		Command: command,
		Outputs: comfortOutputs(
			"CSV file containing a map of Operative Temperature for each sensor and step of the analysis.",
			"deg_from_neutral_map",
			"CSV file containing a map of the degrees Celsius from the adaptive comfort neutral "+
				"temperature for each sensor and step of the analysis.",
		),
	}
}

func utciMap() *domain.Descriptor {
	inputs := irradianceInputs("Weather file used to estimate conditions for any outdoor " +
		"sensors and to compute sun positions.")
	inputs = append(inputs,
		str("wind_speed", "0.5", "A single number for meteorological wind speed in m/s or a string "+
			"of a JSON array with numbers that align with the result-sql reporting period."),
		str("solarcal_par", defaultSolarCal, descSolarCal),
		str("comfort_par", "--cold 9 --heat 26", "A UTCIParameter string to customize the assumptions of "+
			"the UTCI comfort model."),
		str("run_period", "", descRunPeriodMap),
	)

	command := append(irradianceArgs("utci"),
		domain.FlagValue("--wind-speed", "wind_speed"),
		domain.FlagValue("--solarcal-par", "solarcal_par"),
		domain.FlagValue("--comfort-par", "comfort_par"),
		domain.FlagValue("--run-period", "run_period"),
		domain.Flag("--folder", "output"),
	)

	return &domain.Descriptor{
		Name:    "utci-map",
		Summary: "Get CSV files with maps of UTCI comfort from EnergyPlus and Radiance results.",
		Program: domain.DefaultProgram,
		Inputs:  inputs,
		Command: command,
		Outputs: comfortOutputs(
			"CSV file containing a map of Universal Thermal Climate Index (UTCI) temperatures "+
				"for each sensor and step of the analysis.",
			"category_map",
			"CSV file containing a map of the heat/cold stress categories for each sensor and "+
				"step of the analysis. -5 indicates extreme cold stress. +5 indicates extreme heat stress.",
		),
	}
}

func irradianceContrib() *domain.Descriptor {
	return &domain.Descriptor{
		Name:    "irradiance-contrib",
		Summary: "Get .ill files with maps of irradiance contributions from dynamic windows.",
		Program: domain.DefaultProgram,
		Inputs: []domain.InputSpec{
			file("result_sql", "result.sql", descResultSQL, extSQL),
			file("direct_specular", "direct_spec.ill", "A Radiance .ill file containing direct "+
				"irradiance for the specular version of the aperture group.", extIll),
			file("indirect_specular", "indirect_spec.ill", "A Radiance .ill file containing indirect "+
				"irradiance for the specular version of the aperture group.", extIll),
			file("ref_specular", "ref_spec.ill", "A Radiance .ill containing ground-reflected "+
				"irradiance for the specular version of the aperture group.", extIll),
			file("indirect_diffuse", "indirect_diff.ill", "A Radiance .ill file containing indirect "+
				"irradiance for the diffuse version of the aperture group.", extIll),
			file("ref_diffuse", "ref_diff.ill", "A Radiance .ill containing ground-reflected "+
				"irradiance for the diffuse version of the aperture group.", extIll),
			file("sun_up_hours", "sun-up-hours.txt", descSunUpHours, nil),
			required("aperture_id", "Text string for the identifier of the aperture associated "+
				"with the irradiance."),
		},
		Command: []domain.Arg{
			domain.Lit("map"),
			domain.Lit("irradiance-contrib"),
			domain.Path("result_sql"),
			domain.Path("direct_specular"),
			domain.Path("indirect_specular"),
			domain.Path("ref_specular"),
			domain.Path("indirect_diffuse"),
			domain.Path("ref_diffuse"),
			domain.Path("sun_up_hours"),
			domain.FlagValue("--aperture-id", "aperture_id"),
			domain.Flag("--folder", "output"),
		},
		Outputs: []domain.OutputSpec{
			outFolder("result_folder", "output", "Folder containing all of the output .ill files."),
		},
	}
}

func shortwaveMrtMap() *domain.Descriptor {
	return &domain.Descriptor{
		Name:    "shortwave-mrt-map",
		Summary: "Get CSV files with maps of shortwave MRT Deltas from Radiance results.",
		Program: domain.DefaultProgram,
		Inputs: []domain.InputSpec{
			file("epw", "weather.epw", "Weather file used to compute sun positions.", extEPW),
			file("indirect_irradiance", "indirect.ill", "A Radiance .ill containing the indirect "+
				"irradiance for each sensor, or the total irradiance when indirect-is-total is used.", extIll),
			file("direct_irradiance", "direct.ill",
				"A Radiance .ill containing direct irradiance for each sensor.", extIll),
			file("ref_irradiance", "ref.ill",
				"A Radiance .ill containing ground-reflected irradiance for each sensor.", extIll),
			file("sun_up_hours", "sun-up-hours.txt", descSunUpHours, nil),
			optional(folder("contributions", "dynamic", "An optional folder containing sub-folders of "+
				"irradiance contributions from dynamic aperture groups.")),
			str("solarcal_par", defaultSolarCal, descSolarCal),
			str("run_period", "", descRunPeriodAnnual),
			str("indirect_is_total", "is-indirect", "A switch to note whether the indirect-irradiance "+
				"argument is actually the total irradiance.",
				"is-indirect", "indirect-is-total"),
		},
		Command: []domain.Arg{
			domain.Lit("map"),
			domain.Lit("shortwave-mrt"),
			domain.Path("epw"),
			domain.Path("indirect_irradiance"),
			domain.Path("direct_irradiance"),
			domain.Path("ref_irradiance"),
			domain.Path("sun_up_hours"),
			domain.FlagPath("--contributions", "contributions"),
			domain.FlagValue("--solarcal-par", "solarcal_par"),
			domain.FlagValue("--run-period", "run_period"),
			domain.Switch("indirect_is_total"),
			domain.Flag("--output-file", "shortwave.csv"),
		},
		Outputs: []domain.OutputSpec{
			outFile("shortwave_mrt_map", "shortwave.csv", "CSV file containing a map of shortwave MRT deltas."),
		},
	}
}

func longwaveMrtMap() *domain.Descriptor {
	return &domain.Descriptor{
		Name:    "longwave-mrt-map",
		Summary: "Get CSV files with maps of longwave MRT from Radiance and EnergyPlus results.",
		Program: domain.DefaultProgram,
		Inputs: []domain.InputSpec{
			file("result_sql", "result.sql", descResultSQL, extSQL),
			file("view_factors", "view_factors.csv",
				"A CSV of spherical view factors to the surfaces in the result-sql.", []string{"csv"}),
			file("modifiers", "view_factors.mod",
				"Path to a modifiers file that aligns with the view-factors.", []string{"mod", "txt"}),
			file("enclosure_info", "enclosure_info.json", descEnclosure, extJSON),
			file("epw", "weather.epw", "Weather file used to estimate conditions for any outdoor sensors.", extEPW),
			str("run_period", "", descRunPeriodAnnual),
		},
		Command: []domain.Arg{
			domain.Lit("map"),
			domain.Lit("longwave-mrt"),
			domain.Path("result_sql"),
			domain.Path("view_factors"),
			domain.Path("modifiers"),
			domain.Path("enclosure_info"),
			domain.Path("epw"),
			domain.FlagValue("--run-period", "run_period"),
			domain.Flag("--output-file", "longwave.csv"),
		},
		Outputs: []domain.OutputSpec{
			outFile("longwave_mrt_map", "longwave.csv", "CSV file containing a map of longwave MRT."),
		},
	}
}

func airMap() *domain.Descriptor {
	return &domain.Descriptor{
		Name:    "air-map",
		Summary: "Get CSV files with maps of air temperatures or humidity from EnergyPlus results.",
		Program: domain.DefaultProgram,
		Inputs: []domain.InputSpec{
			file("result_sql", "result.sql", descResultSQL, extSQL),
			file("enclosure_info", "enclosure_info.json", descEnclosure, extJSON),
			file("epw", "weather.epw", "Weather file used to estimate conditions for any outdoor sensors.", extEPW),
			str("run_period", "", descRunPeriodAnnual),
			str("metric", "air-temperature", "A switch to note whether the output matrix should be with "+
				"relative humidity or air temperature values.",
				"air-temperature", "relative-humidity"),
		},
		Command: []domain.Arg{
			domain.Lit("map"),
			domain.Lit("air"),
			domain.Path("result_sql"),
			domain.Path("enclosure_info"),
			domain.Path("epw"),
			domain.FlagValue("--run-period", "run_period"),
			domain.Switch("metric"),
			domain.Flag("--output-file", "air.csv"),
		},
		Outputs: []domain.OutputSpec{
			outFile("air_map", "air.csv", "CSV file containing a map of air temperatures or humidity."),
		},
	}
}

func mapResultInfo() *domain.Descriptor {
	return &domain.Descriptor{
		Name:    "map-result-info",
		Summary: "Get a JSON that specifies the data type and units for comfort map outputs.",
		Program: domain.DefaultProgram,
		Inputs: []domain.InputSpec{
			required("comfort_model", "Text for the comfort model of the thermal mapping "+
				"simulation. Choose from: pmv, adaptive, utci.",
				"pmv", "adaptive", "utci"),
			str("run_period", "", "The AnalysisPeriod string that dictates the start and end of "+
				"the analysis. If unspecified, it will be assumed results are for a full year."),
			str("qualifier", "", "Text for any options used on the comfort map simulation that "+
				"change the output data type of results, e.g. write-set-map."),
		},
		Command: []domain.Arg{
			domain.Lit("map"),
			domain.Lit("map-result-info"),
			domain.Value("comfort_model"),
			domain.FlagValue("--run-period", "run_period"),
			domain.FlagValue("--qualifier", "qualifier"),
			domain.Flag("--folder", "output"),
			domain.Flag("--log-file", "results_info.json"),
		},
		Outputs: []domain.OutputSpec{
			outFile("results_info_file", "results_info.json",
				"A JSON that specifies the data type and units for all comfort map outputs."),
			outFile("viz_config_file", "config.json",
				"A JSON that specifies configurations for VTK visualizations."),
			outFile("temperature_info", "output/temperature.json",
				"A JSON that specifies the data type and units for temperature map results."),
			outFile("condition_info", "output/condition.json",
				"A JSON that specifies the data type and units for thermal condition map results."),
			outFile("condition_intensity_info", "output/condition_intensity.json",
				"A JSON that specifies the data type and units for condition intensity map results."),
		},
	}
}

func tcp() *domain.Descriptor {
	return &domain.Descriptor{
		Name:    "tcp",
		Summary: "Compute Thermal Comfort Percent (TCP) from thermal condition CSV map.",
		Program: domain.DefaultProgram,
		Inputs: []domain.InputSpec{
			file("condition_csv", "condition.csv",
				"A CSV file of thermal conditions output by a thermal mapping function.", []string{"csv", "cond"}),
			file("enclosure_info", "enclosure_info.json", descEnclosure, extJSON),
			file("occ_schedule_json", "occ_schedule.json", "An occupancy schedule JSON output by the "+
				"honeybee-energy model-occ-schedules function.", extJSON),
			optional(file("schedule", "schedule.txt", "An optional path to a CSV file to specify the "+
				"relevant times during which comfort should be evaluated.", nil)),
		},
		Command: []domain.Arg{
			domain.Lit("map"),
			domain.Lit("tcp"),
			domain.Path("condition_csv"),
			domain.Path("enclosure_info"),
			domain.FlagPath("--schedule", "schedule"),
			domain.FlagPath("--occ-schedule-json", "occ_schedule_json"),
			domain.Flag("--folder", "output"),
		},
		Outputs: []domain.OutputSpec{
			outFile("tcp", "output/tcp.csv", "A CSV that contains the Thermal Comfort Percent (TCP) for each sensor."),
			outFile("hsp", "output/hsp.csv", "A CSV that contains the Heat Sensation Percent (HSP) for each sensor."),
			outFile("csp", "output/csp.csv", "A CSV that contains the Cold Sensation Percent (CSP) for each sensor."),
		},
	}
}

// Builtin returns the descriptors of every supported ladybug-comfort map subcommand.
func Builtin() []*domain.Descriptor {
	return []*domain.Descriptor{
		pmvMap(),
		adaptiveMap(),
		utciMap(),
		irradianceContrib(),
		shortwaveMrtMap(),
		longwaveMrtMap(),
		airMap(),
		mapResultInfo(),
		tcp(),
	}
}
