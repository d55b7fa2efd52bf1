/*
Package config loads the optional regexlab configuration file.

	            +-------------+
	            |   Config    |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Picks the engine backend and an optional match timeout
- Sets where the browser UI listens and the base of shared links
- Adds entries to the pattern library

🔄 Flow:
1. Load reads the file, or returns Default when it does not exist
2. GetParser picks a parser by extension
3. Validate fills defaults and rejects bad values

🔍 Example:

	cfg, err := config.Load(ctx, config.DefaultPath)
	if err != nil {
		return err
	}
	ev, err := engine.New(cfg.EngineOptions())
*/
package config
