package service

import (
	"errors"

	"github.com/plotweave/backend/internal/model"
	"github.com/plotweave/backend/internal/repository"
	"gorm.io/gorm"
)

// InitDefaultPlotTemplates 初始化预置情节结构模板
// 按 template_type 逐个补齐缺失的模板，已存在的不做内容比对
func InitDefaultPlotTemplates(db *gorm.DB) error {
	templateRepo := repository.NewPlotTemplateRepository(db)
	builtins := builtinPlotTemplates()

	count, err := templateRepo.Count()
	if err != nil {
		return err
	}
	if count >= int64(len(builtins)) {
		// 目录完整，跳过初始化
		return nil
	}

	for _, template := range builtins {
		_, err := templateRepo.GetByType(template.TemplateType)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		// 模板与其环节定义由同一次 Create 落库
		if err := templateRepo.Create(template); err != nil {
			return err
		}
	}
	return nil
}

// builtinPlotTemplates 八套内置叙事结构
func builtinPlotTemplates() []*model.PlotTemplate {
	return []*model.PlotTemplate{
		{
			TemplateType: "freytags_pyramid",
			Name:         "Freytag's Pyramid",
			Description:  "Five-part dramatic arc expanded into seven beats, from exposition through denouement.",
			SortOrder:    1,
			Sections: []model.TemplateSection{
				{Key: "exposition", Title: "Exposition", Description: "Introduce the world, the protagonist, and the status quo before anything changes.", SortOrder: 1},
				{Key: "inciting_incident", Title: "Inciting Incident", Description: "The event that disturbs the status quo and sets the story in motion.", SortOrder: 2},
				{Key: "rising_action", Title: "Rising Action", Description: "Complications build as the protagonist pursues their goal and stakes escalate.", SortOrder: 3},
				{Key: "climax", Title: "Climax", Description: "The turning point of highest tension where the conflict comes to a head.", SortOrder: 4},
				{Key: "falling_action", Title: "Falling Action", Description: "Consequences of the climax unfold; remaining threads begin to resolve.", SortOrder: 5},
				{Key: "resolution", Title: "Resolution", Description: "The central conflict is settled, for better or worse.", SortOrder: 6},
				{Key: "denouement", Title: "Denouement", Description: "The new status quo; show what the world looks like after the dust settles.", SortOrder: 7},
			},
		},
		{
			TemplateType: "heros_journey",
			Name:         "Hero's Journey",
			Description:  "Campbell's monomyth in twelve stages, from the ordinary world to the return with the elixir.",
			SortOrder:    2,
			Sections: []model.TemplateSection{
				{Key: "ordinary_world", Title: "Ordinary World", Description: "The hero's everyday life before the adventure begins.", SortOrder: 1},
				{Key: "call_to_adventure", Title: "Call to Adventure", Description: "Something shakes up the situation and presents a challenge or quest.", SortOrder: 2},
				{Key: "refusal_of_call", Title: "Refusal of the Call", Description: "The hero hesitates, fears the unknown, or feels unequal to the task.", SortOrder: 3},
				{Key: "meeting_mentor", Title: "Meeting the Mentor", Description: "A mentor figure provides guidance, training, or a gift for the journey.", SortOrder: 4},
				{Key: "crossing_threshold", Title: "Crossing the Threshold", Description: "The hero commits and enters the special world of the story.", SortOrder: 5},
				{Key: "tests_allies_enemies", Title: "Tests, Allies, Enemies", Description: "The hero learns the rules of the special world through trials and new relationships.", SortOrder: 6},
				{Key: "approach_inmost_cave", Title: "Approach to the Inmost Cave", Description: "Preparations for the major challenge at the heart of the special world.", SortOrder: 7},
				{Key: "ordeal", Title: "Ordeal", Description: "The hero confronts death or their greatest fear; the crisis of the journey.", SortOrder: 8},
				{Key: "reward", Title: "Reward", Description: "Having survived, the hero takes possession of the treasure or insight.", SortOrder: 9},
				{Key: "road_back", Title: "The Road Back", Description: "The hero is driven to complete the adventure and return home; the chase begins.", SortOrder: 10},
				{Key: "resurrection", Title: "Resurrection", Description: "A final, most dangerous test where the hero is transformed.", SortOrder: 11},
				{Key: "return_with_elixir", Title: "Return with the Elixir", Description: "The hero returns with something to heal or improve the ordinary world.", SortOrder: 12},
			},
		},
		{
			TemplateType: "three_act",
			Name:         "Three Act Structure",
			Description:  "The classic setup / confrontation / resolution structure, broken into nine beats.",
			IsDefault:    true,
			SortOrder:    3,
			Sections: []model.TemplateSection{
				{Key: "act1_setup", Title: "Act I: Setup", Description: "Establish the protagonist, their world, and what they want.", SortOrder: 1},
				{Key: "act1_inciting_incident", Title: "Act I: Inciting Incident", Description: "The event that upsets the balance and demands a response.", SortOrder: 2},
				{Key: "act1_plot_point_one", Title: "Act I: First Plot Point", Description: "The protagonist commits to the journey; no turning back.", SortOrder: 3},
				{Key: "act2_rising_action", Title: "Act II: Rising Action", Description: "Obstacles mount as the protagonist pursues the goal in unfamiliar territory.", SortOrder: 4},
				{Key: "act2_midpoint", Title: "Act II: Midpoint", Description: "A major revelation or reversal that raises the stakes and shifts the approach.", SortOrder: 5},
				{Key: "act2_plot_point_two", Title: "Act II: Second Plot Point", Description: "The lowest moment; the protagonist gains the final piece needed to act.", SortOrder: 6},
				{Key: "act3_crisis", Title: "Act III: Crisis", Description: "The dilemma before the final confrontation; the hardest choice.", SortOrder: 7},
				{Key: "act3_climax", Title: "Act III: Climax", Description: "The final confrontation where the central conflict is decided.", SortOrder: 8},
				{Key: "act3_resolution", Title: "Act III: Resolution", Description: "Tie off the threads and show the changed world.", SortOrder: 9},
			},
		},
		{
			TemplateType: "story_circle",
			Name:         "Story Circle",
			Description:  "Dan Harmon's eight-step cycle of departure and return built around a character's need.",
			SortOrder:    4,
			Sections: []model.TemplateSection{
				{Key: "you", Title: "You", Description: "A character in their zone of comfort.", SortOrder: 1},
				{Key: "need", Title: "Need", Description: "But they want or need something.", SortOrder: 2},
				{Key: "go", Title: "Go", Description: "They enter an unfamiliar situation.", SortOrder: 3},
				{Key: "search", Title: "Search", Description: "They adapt to the new situation, paying a price along the way.", SortOrder: 4},
				{Key: "find", Title: "Find", Description: "They get what they wanted.", SortOrder: 5},
				{Key: "take", Title: "Take", Description: "But it costs more than they expected.", SortOrder: 6},
				{Key: "return", Title: "Return", Description: "They return to their familiar situation.", SortOrder: 7},
				{Key: "change", Title: "Change", Description: "Having changed from the journey.", SortOrder: 8},
			},
		},
		{
			TemplateType: "fichtean_curve",
			Name:         "Fichtean Curve",
			Description:  "Starts in the action and climbs through repeated crises to the climax, skipping long exposition.",
			SortOrder:    5,
			Sections: []model.TemplateSection{
				{Key: "inciting_incident", Title: "Inciting Incident", Description: "Open inside the action; the trouble is already underway.", SortOrder: 1},
				{Key: "first_crisis", Title: "First Crisis", Description: "An early setback that deepens the conflict and reveals character.", SortOrder: 2},
				{Key: "second_crisis", Title: "Second Crisis", Description: "A harder complication; exposition is folded into the action.", SortOrder: 3},
				{Key: "third_crisis", Title: "Third Crisis", Description: "The stakes peak just below the breaking point.", SortOrder: 4},
				{Key: "climax", Title: "Climax", Description: "The highest point of tension where the conflict resolves.", SortOrder: 5},
				{Key: "falling_action", Title: "Falling Action", Description: "A brief wind-down after the climax.", SortOrder: 6},
			},
		},
		{
			TemplateType: "save_the_cat",
			Name:         "Save the Cat",
			Description:  "Blake Snyder's fifteen-beat sheet, from opening image to final image.",
			SortOrder:    6,
			Sections: []model.TemplateSection{
				{Key: "opening_image", Title: "Opening Image", Description: "A snapshot of the protagonist's world before the story begins.", SortOrder: 1},
				{Key: "theme_stated", Title: "Theme Stated", Description: "Someone states what the story is really about, usually to a deaf ear.", SortOrder: 2},
				{Key: "setup", Title: "Setup", Description: "Introduce the hero's flaws and everything that needs fixing.", SortOrder: 3},
				{Key: "catalyst", Title: "Catalyst", Description: "The life-changing event that knocks down the old world.", SortOrder: 4},
				{Key: "debate", Title: "Debate", Description: "The hero resists the call; should they go?", SortOrder: 5},
				{Key: "break_into_two", Title: "Break Into Two", Description: "The hero makes a choice and enters the upside-down world of Act Two.", SortOrder: 6},
				{Key: "b_story", Title: "B Story", Description: "A new relationship that carries the theme.", SortOrder: 7},
				{Key: "fun_and_games", Title: "Fun and Games", Description: "The promise of the premise; the hero explores the new world.", SortOrder: 8},
				{Key: "midpoint", Title: "Midpoint", Description: "A false victory or false defeat that raises the stakes.", SortOrder: 9},
				{Key: "bad_guys_close_in", Title: "Bad Guys Close In", Description: "External and internal pressure tightens.", SortOrder: 10},
				{Key: "all_is_lost", Title: "All Is Lost", Description: "The opposite of the midpoint; a whiff of death.", SortOrder: 11},
				{Key: "dark_night_of_the_soul", Title: "Dark Night of the Soul", Description: "The hero hits bottom and digests the loss.", SortOrder: 12},
				{Key: "break_into_three", Title: "Break Into Three", Description: "Thanks to the B story, the hero finds the solution.", SortOrder: 13},
				{Key: "finale", Title: "Finale", Description: "The hero applies the lesson and dispatches the bad guys in ascending order.", SortOrder: 14},
				{Key: "final_image", Title: "Final Image", Description: "The mirror of the opening image, proving change has occurred.", SortOrder: 15},
			},
		},
		{
			TemplateType: "seven_point",
			Name:         "Seven-Point Structure",
			Description:  "Dan Wells' seven-point system: start at the end, work back to the hook.",
			SortOrder:    7,
			Sections: []model.TemplateSection{
				{Key: "hook", Title: "Hook", Description: "The starting state, the opposite of the resolution.", SortOrder: 1},
				{Key: "plot_turn_one", Title: "Plot Turn 1", Description: "The call to adventure; introduce the conflict and the new world.", SortOrder: 2},
				{Key: "pinch_point_one", Title: "Pinch Point 1", Description: "Apply pressure; force the protagonist into action.", SortOrder: 3},
				{Key: "midpoint", Title: "Midpoint", Description: "The protagonist moves from reaction to action.", SortOrder: 4},
				{Key: "pinch_point_two", Title: "Pinch Point 2", Description: "The jaws close; things look hopeless.", SortOrder: 5},
				{Key: "plot_turn_two", Title: "Plot Turn 2", Description: "The protagonist obtains the last thing needed to reach the resolution.", SortOrder: 6},
				{Key: "resolution", Title: "Resolution", Description: "The climax everything has been building toward.", SortOrder: 7},
			},
		},
		{
			TemplateType: "freeform",
			Name:         "Freeform",
			Description:  "A blank scaffold with example beats meant to be rewritten to fit your own structure.",
			SortOrder:    8,
			Sections: []model.TemplateSection{
				{Key: "beginning", Title: "Beginning", Description: "Example beat. Rename and describe however fits your story.", SortOrder: 1},
				{Key: "middle", Title: "Middle", Description: "Example beat. Rename and describe however fits your story.", SortOrder: 2},
				{Key: "end", Title: "End", Description: "Example beat. Rename and describe however fits your story.", SortOrder: 3},
			},
		},
	}
}
