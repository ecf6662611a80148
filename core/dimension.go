package core

// Dimension 是美学维度的枚举。维度集合是封闭的：新增维度必须修改此文件，
// 这样交集/缺失维度的处理在编译期就能对齐，而不是运行期从 map 里"发现"。
//
// 所有维度分值来自外部分析服务，取值范围 [1,7]。
type Dimension int

const (
	// 视觉语言
	ColorPalettePsychology Dimension = iota
	LightingPhilosophy
	CameraMovementPersonality
	ShotCompositionPhilosophy
	DepthOfFieldPsychology
	TextureAndGrain
	AspectRatioEmotionalFrame
	SpatialDensity
	CinematicRealismSpectrum
	BlockingAndPerformanceSpace
	ColorTemperature
	LensDistortionAndPerspective
	ShadowRatio
	FrameRateAndMotion
	VisualMotifRepetition

	// 剪辑与节奏
	EditingTempo
	NarrativeRhythm
	TemporalStructure
	MontagePhilosophy
	SceneLengthVariance
	EllipsisAndGaps
	TransitionStyle
	RhythmAcceleration

	// 声音与配乐
	ScoreEmotionalTemperature
	ScoreDensity
	MusicFunction
	SoundscapeTexture
	DiegeticVsNondiegeticRatio
	SonicInteriority
	SilenceAsTool
	VocalTreatment
	RhythmicPercussion

	// 叙事心理
	PhilosophicalStance
	NarrativeTensionSource
	MoralComplexity
	EndingResolution
	PowerDynamics
	IntimacyScale
	DialoguePhilosophy
	RelationshipToClass
	BodyAndPhysicality
	TimeRelationship
	HopeQuotient
	PoliticalConsciousness

	// 品质取向
	CraftPrecisionVsRawness
	ArtCinemaVsPopCinemaMode
	NarrativeAmbitionLevel
	IronySincerityRegister
	EmotionalWeightTolerance
	PerformanceStylePreference
	ScriptConstructionVisibility
	AuteurIntentionalityDesire

	// 情感共鸣
	EmotionalTemperature
	CatharsisAvailability
	TonalConsistency
	EmpathyRequirement
	BeautyPriority
	SensoryImmersion
	VulnerabilityExposure
	MysteryComfort
	ArtificeAwareness
	SufferingTolerance

	// NumDimensions 是维度总数，同时作为数组长度使用。
	NumDimensions int = iota
)

// dimensionNames 是线上契约中的维度名（snake_case），与分析服务的输出一一对应。
var dimensionNames = [NumDimensions]string{
	"color_palette_psychology",
	"lighting_philosophy",
	"camera_movement_personality",
	"shot_composition_philosophy",
	"depth_of_field_psychology",
	"texture_and_grain",
	"aspect_ratio_emotional_frame",
	"spatial_density",
	"cinematic_realism_spectrum",
	"blocking_and_performance_space",
	"color_temperature",
	"lens_distortion_and_perspective",
	"shadow_ratio",
	"frame_rate_and_motion",
	"visual_motif_repetition",
	"editing_tempo",
	"narrative_rhythm",
	"temporal_structure",
	"montage_philosophy",
	"scene_length_variance",
	"ellipsis_and_gaps",
	"transition_style",
	"rhythm_acceleration",
	"score_emotional_temperature",
	"score_density",
	"music_function",
	"soundscape_texture",
	"diegetic_vs_nondiegetic_ratio",
	"sonic_interiority",
	"silence_as_tool",
	"vocal_treatment",
	"rhythmic_percussion",
	"philosophical_stance",
	"narrative_tension_source",
	"moral_complexity",
	"ending_resolution",
	"power_dynamics",
	"intimacy_scale",
	"dialogue_philosophy",
	"relationship_to_class",
	"body_and_physicality",
	"time_relationship",
	"hope_quotient",
	"political_consciousness",
	"craft_precision_vs_rawness",
	"art_cinema_vs_pop_cinema_mode",
	"narrative_ambition_level",
	"irony_sincerity_register",
	"emotional_weight_tolerance",
	"performance_style_preference",
	"script_construction_visibility",
	"auteur_intentionality_desire",
	"emotional_temperature",
	"catharsis_availability",
	"tonal_consistency",
	"empathy_requirement",
	"beauty_priority",
	"sensory_immersion",
	"vulnerability_exposure",
	"mystery_comfort",
	"artifice_awareness",
	"suffering_tolerance",
}

var dimensionIndex = func() map[string]Dimension {
	m := make(map[string]Dimension, NumDimensions)
	for i, name := range dimensionNames {
		m[name] = Dimension(i)
	}
	return m
}()

// String 返回维度的线上名称。
func (d Dimension) String() string {
	if d < 0 || int(d) >= NumDimensions {
		return "unknown"
	}
	return dimensionNames[d]
}

// DimensionByName 按线上名称查找维度。
func DimensionByName(name string) (Dimension, bool) {
	d, ok := dimensionIndex[name]
	return d, ok
}

// Dimensions 返回全部维度（按枚举顺序）。
func Dimensions() []Dimension {
	out := make([]Dimension, NumDimensions)
	for i := range out {
		out[i] = Dimension(i)
	}
	return out
}

// Vector 是一部影片（或一个指纹）在封闭维度集合上的分值。
// 缺失的维度通过 present 标记区分，而不是用 0 充数：
// 0 会在余弦计算里错误地惩罚候选。
type Vector struct {
	scores  [NumDimensions]float64
	present [NumDimensions]bool
}

// Set 写入某维度的分值。
func (v *Vector) Set(d Dimension, score float64) {
	if d < 0 || int(d) >= NumDimensions {
		return
	}
	v.scores[d] = score
	v.present[d] = true
}

// Get 返回某维度的分值；第二个返回值表示该维度是否存在。
func (v *Vector) Get(d Dimension) (float64, bool) {
	if d < 0 || int(d) >= NumDimensions {
		return 0, false
	}
	return v.scores[d], v.present[d]
}

// Has 判断维度是否存在。
func (v *Vector) Has(d Dimension) bool {
	return d >= 0 && int(d) < NumDimensions && v.present[d]
}

// Len 返回存在的维度数。
func (v *Vector) Len() int {
	n := 0
	for _, p := range v.present {
		if p {
			n++
		}
	}
	return n
}

// VectorFromMap 从线上契约的 map（维度名 -> 分值）构建 Vector。
// 未知的维度名被忽略。
func VectorFromMap(m map[string]float64) *Vector {
	if len(m) == 0 {
		return nil
	}
	var v Vector
	for name, score := range m {
		if d, ok := DimensionByName(name); ok {
			v.Set(d, score)
		}
	}
	if v.Len() == 0 {
		return nil
	}
	return &v
}

// Map 导出为线上契约的 map（只包含存在的维度）。
func (v *Vector) Map() map[string]float64 {
	out := make(map[string]float64, NumDimensions)
	for i := 0; i < NumDimensions; i++ {
		if v.present[i] {
			out[dimensionNames[i]] = v.scores[i]
		}
	}
	return out
}
