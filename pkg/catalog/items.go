package catalog

// defaultItems is the built-in item reference table. Internal names are the
// normalized matching keys the scanner compares OCR text against; aliases
// cover crated labels and common shorthand seen in screenshots. Template icon
// files in the template directory are named after Code.
var defaultItems = []Entry{
	// Small arms
	{Code: "rifle", InternalName: "rifle", DisplayName: "Rifle", Category: SmallArms,
		Aliases: []string{"rifle crate", "rifles"}},
	{Code: "argenti", InternalName: "argenti rifle", DisplayName: "Argenti r.II Rifle", Category: SmallArms, Faction: FactionColonials,
		Aliases: []string{"argenti", "argenti crate"}},
	{Code: "loughcaster", InternalName: "loughcaster", DisplayName: "Loughcaster", Category: SmallArms, Faction: FactionWardens,
		Aliases: []string{"loughcaster crate"}},
	{Code: "blakerow", InternalName: "blakerow 871", DisplayName: "Blakerow 871", Category: SmallArms, Faction: FactionWardens,
		Aliases: []string{"blakerow"}},
	{Code: "pistol", InternalName: "pistol", DisplayName: "Pistol", Category: SmallArms,
		Aliases: []string{"pistol crate"}},
	{Code: "smg", InternalName: "submachine gun", DisplayName: "Submachine Gun", Category: SmallArms,
		Aliases: []string{"smg", "smg crate"}},
	{Code: "shotgun", InternalName: "shotgun", DisplayName: "Shotgun", Category: SmallArms,
		Aliases: []string{"shotgun crate"}},

	// Heavy arms
	{Code: "mortar", InternalName: "mortar", DisplayName: "Cremari Mortar", Category: HeavyArms,
		Aliases: []string{"cremari", "mortar crate"}},
	{Code: "machine_gun", InternalName: "machine gun", DisplayName: "Machine Gun", Category: HeavyArms,
		Aliases: []string{"mg", "machine gun crate"}},
	{Code: "rpg", InternalName: "rocket launcher", DisplayName: "Rocket Launcher", Category: HeavyArms,
		Aliases: []string{"rpg", "launcher crate"}},
	{Code: "atr", InternalName: "anti tank rifle", DisplayName: "Anti-Tank Rifle", Category: HeavyArms,
		Aliases: []string{"at rifle", "anti-tank rifle"}},

	// Ammunition
	{Code: "rifle_ammo", InternalName: "rifle ammunition", DisplayName: "7.62mm", Category: Ammunition,
		Aliases: []string{"7.62", "rifle ammo"}},
	{Code: "pistol_ammo", InternalName: "pistol ammunition", DisplayName: "8mm", Category: Ammunition,
		Aliases: []string{"8mm", "pistol ammo"}},
	{Code: "smg_ammo", InternalName: "smg ammunition", DisplayName: "9mm", Category: Ammunition,
		Aliases: []string{"9mm", "smg ammo"}},
	{Code: "shotgun_ammo", InternalName: "shotgun ammunition", DisplayName: "Buckshot", Category: Ammunition,
		Aliases: []string{"buckshot"}},
	{Code: "mortar_shell", InternalName: "mortar shell", DisplayName: "Mortar Shell", Category: Ammunition,
		Aliases: []string{"mortar shells"}},
	{Code: "mg_ammo", InternalName: "machine gun ammunition", DisplayName: "12.7mm", Category: Ammunition,
		Aliases: []string{"12.7", "mg ammo"}},
	{Code: "heavy_shell", InternalName: "heavy artillery shell", DisplayName: "150mm", Category: Ammunition,
		Aliases: []string{"150mm", "heavy shell"}},
	{Code: "light_shell", InternalName: "light artillery shell", DisplayName: "120mm", Category: Ammunition,
		Aliases: []string{"120mm", "light shell"}},

	// Utility
	{Code: "grenade", InternalName: "grenade", DisplayName: "Grenade", Category: Utility,
		Aliases: []string{"frag grenade", "grenade crate"}},
	{Code: "he_grenade", InternalName: "high explosive grenade", DisplayName: "HE Grenade", Category: Utility,
		Aliases: []string{"he grenade"}},
	{Code: "smoke_grenade", InternalName: "smoke grenade", DisplayName: "Smoke Grenade", Category: Utility,
		Aliases: []string{"smoke"}},
	{Code: "binoculars", InternalName: "binoculars", DisplayName: "Binoculars", Category: Utility},
	{Code: "radio", InternalName: "radio", DisplayName: "Radio", Category: Utility,
		Aliases: []string{"radio pack"}},
	{Code: "shovel", InternalName: "shovel", DisplayName: "Shovel", Category: Utility},
	{Code: "wrench", InternalName: "wrench", DisplayName: "Wrench", Category: Utility},
	{Code: "gas_mask", InternalName: "gas mask", DisplayName: "Gas Mask", Category: Utility,
		Aliases: []string{"gasmask"}},
	{Code: "tripod", InternalName: "tripod", DisplayName: "Tripod", Category: Utility},

	// Medical
	{Code: "bandages", InternalName: "bandages", DisplayName: "Bandages", Category: Medical,
		Aliases: []string{"bandage"}},
	{Code: "first_aid_kit", InternalName: "first aid kit", DisplayName: "First Aid Kit", Category: Medical,
		Aliases: []string{"first aid"}},
	{Code: "trauma_kit", InternalName: "trauma kit", DisplayName: "Trauma Kit", Category: Medical},
	{Code: "blood_plasma", InternalName: "blood plasma", DisplayName: "Blood Plasma", Category: Medical,
		Aliases: []string{"plasma"}},
	{Code: "medic_uniform", InternalName: "medic uniform", DisplayName: "Medic Uniform", Category: Uniforms,
		Aliases: []string{"medic fatigues"}},

	// Resources
	{Code: "bmats", InternalName: "basic materials", DisplayName: "Basic Materials", Category: Resources,
		Aliases: []string{"bmats", "bmat"}},
	{Code: "rmats", InternalName: "refined materials", DisplayName: "Refined Materials", Category: Resources,
		Aliases: []string{"rmats", "rmat"}},
	{Code: "emats", InternalName: "explosive materials", DisplayName: "Explosive Materials", Category: Resources,
		Aliases: []string{"emats", "emat"}},
	{Code: "hemats", InternalName: "heavy explosive materials", DisplayName: "Heavy Explosive Materials", Category: Resources,
		Aliases: []string{"hemats"}},
	{Code: "components", InternalName: "components", DisplayName: "Components", Category: Resources,
		Aliases: []string{"comps"}},
	{Code: "diesel", InternalName: "diesel", DisplayName: "Diesel", Category: Resources,
		Aliases: []string{"fuel"}},
	{Code: "petrol", InternalName: "petrol", DisplayName: "Petrol", Category: Resources},
	{Code: "sulfur", InternalName: "sulfur", DisplayName: "Sulfur", Category: Resources},

	// Uniforms
	{Code: "soldier_uniform", InternalName: "soldier uniform", DisplayName: "Soldier Uniform", Category: Uniforms,
		Aliases: []string{"uniform", "fatigues"}},
	{Code: "engineer_uniform", InternalName: "engineer uniform", DisplayName: "Engineer Uniform", Category: Uniforms},

	// Supplies
	{Code: "soldier_supplies", InternalName: "soldier supplies", DisplayName: "Soldier Supplies", Category: Supplies,
		Aliases: []string{"ssupplies", "shirts"}},
	{Code: "garrison_supplies", InternalName: "garrison supplies", DisplayName: "Garrison Supplies", Category: Supplies,
		Aliases: []string{"gsupplies", "garrison"}},
	{Code: "maintenance_supplies", InternalName: "maintenance supplies", DisplayName: "Maintenance Supplies", Category: Supplies,
		Aliases: []string{"msupps"}},
}
