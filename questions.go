/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"math/rand"
)

// Question is a single quiz item. Sourced from the static bank; never mutated.
type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

// Stage identifies one of the four tournament rounds. Each stage draws from
// its own disjoint subset of the question bank.
type Stage string

const (
	StagePremiere  Stage = "premiere"
	StageHuitiemes Stage = "huitiemes"
	StageDemi      Stage = "demi"
	StageFinale    Stage = "finale"
)

// stageOrder fixes the iteration order wherever all stages are walked,
// since map iteration order is not stable.
var stageOrder = []Stage{StagePremiere, StageHuitiemes, StageDemi, StageFinale}

func parseStage(s string) (Stage, bool) {
	switch Stage(s) {
	case StagePremiere, StageHuitiemes, StageDemi, StageFinale:
		return Stage(s), true
	}
	return "", false
}

// questionBank is the static catalog, on the history of Senegal, partitioned
// per tournament stage. Question IDs are unique across the whole bank.
var questionBank = map[Stage][]Question{
	StagePremiere: {
		{ID: 1, Text: "En quelle année le Sénégal a-t-il obtenu son indépendance ?", Options: []string{"1958", "1960", "1962", "1965"}, Correct: 1},
		{ID: 2, Text: "Qui était le premier président du Sénégal indépendant ?", Options: []string{"Mamadou Dia", "Léopold Sédar Senghor", "Abdou Diouf", "Abdoulaye Wade"}, Correct: 1},
		{ID: 3, Text: "Quelle est l'ancienne capitale du Sénégal colonial français ?", Options: []string{"Dakar", "Saint-Louis", "Thiès", "Kaolack"}, Correct: 1},
		{ID: 4, Text: "Le royaume du Cayor était dirigé par des :", Options: []string{"Rois", "Damel", "Buur", "Lamane"}, Correct: 1},
		{ID: 5, Text: "Qui était Lat Dior ?", Options: []string{"Un explorateur", "Un damel du Cayor", "Un marabout", "Un colonisateur"}, Correct: 1},
		{ID: 6, Text: "L'île de Gorée était principalement connue pour :", Options: []string{"Le commerce d'or", "La traite négrière", "La pêche", "L'agriculture"}, Correct: 1},
		{ID: 7, Text: "Quel fleuve traverse le Sénégal ?", Options: []string{"Niger", "Gambie", "Sénégal", "Casamance"}, Correct: 2},
		{ID: 8, Text: "La bataille de Guilé a opposé Lat Dior aux :", Options: []string{"Portugais", "Anglais", "Français", "Hollandais"}, Correct: 2},
	},
	StageHuitiemes: {
		{ID: 9, Text: "Quel était le nom du parti de Léopold Sédar Senghor ?", Options: []string{"UPS", "BDS", "PAI", "RND"}, Correct: 0},
		{ID: 10, Text: "La ville de Kaolack était célèbre pour le commerce de :", Options: []string{"L'or", "L'arachide", "Le mil", "Le coton"}, Correct: 1},
		{ID: 11, Text: "Qui a succédé à Léopold Sédar Senghor à la présidence ?", Options: []string{"Mamadou Dia", "Abdou Diouf", "Abdoulaye Wade", "Macky Sall"}, Correct: 1},
		{ID: 12, Text: "L'ethnie majoritaire au Sénégal est :", Options: []string{"Peul", "Wolof", "Serer", "Diola"}, Correct: 1},
		{ID: 13, Text: "Le marabout Ahmadou Bamba a fondé la confrérie des :", Options: []string{"Tidjanes", "Mourides", "Layènes", "Qadiriyya"}, Correct: 1},
		{ID: 14, Text: "La ville sainte de Touba a été fondée par :", Options: []string{"El Hadji Omar Tall", "Ahmadou Bamba", "Malik Sy", "Abdoulaye Yakhine"}, Correct: 1},
	},
	StageDemi: {
		{ID: 15, Text: "Le Sénégal faisait partie de quelle fédération en Afrique de l'Ouest ?", Options: []string{"AOF", "AEF", "Union du Mali", "CEDEAO"}, Correct: 0},
		{ID: 16, Text: "La résistance d'El Hadji Omar Tall s'est déroulée au :", Options: []string{"XVIIe siècle", "XVIIIe siècle", "XIXe siècle", "XXe siècle"}, Correct: 2},
		{ID: 17, Text: "Quel port était le point de départ du chemin de fer Dakar-Niger ?", Options: []string{"Saint-Louis", "Dakar", "Rufisque", "Kaolack"}, Correct: 1},
		{ID: 18, Text: "La région de la Casamance est habitée principalement par les :", Options: []string{"Wolof", "Serer", "Diola", "Peul"}, Correct: 2},
		{ID: 19, Text: "En quelle année Dakar est-elle devenue capitale du Sénégal ?", Options: []string{"1902", "1958", "1960", "1904"}, Correct: 1},
	},
	StageFinale: {
		{ID: 20, Text: "Le mouvement de la Négritude a été cofondé par :", Options: []string{"Cheikh Anta Diop", "Léopold Sédar Senghor", "Alioune Diop", "Abdoulaye Sadji"}, Correct: 1},
		{ID: 21, Text: "Cheikh Anta Diop était :", Options: []string{"Un historien et anthropologue", "Un militaire", "Un damel", "Un navigateur"}, Correct: 0},
		{ID: 22, Text: "Blaise Diagne fut le premier Africain élu :", Options: []string{"Gouverneur de l'AOF", "Député au Parlement français", "Maire de Dakar", "Président du Conseil"}, Correct: 1},
		{ID: 23, Text: "Les tirailleurs sénégalais ont été créés en :", Options: []string{"1820", "1857", "1914", "1940"}, Correct: 1},
		{ID: 24, Text: "En quelle année la fédération du Mali a-t-elle éclaté ?", Options: []string{"1958", "1959", "1960", "1962"}, Correct: 2},
	},
}

// stageQuestionSets returns a fresh shuffled copy of every stage's question
// set, taken once per room at creation time.
func stageQuestionSets() map[Stage][]Question {
	sets := make(map[Stage][]Question, len(questionBank))
	for stage, questions := range questionBank {
		sets[stage] = shuffledQuestions(questions)
	}
	return sets
}

func shuffledQuestions(questions []Question) []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// drawQuestionValue picks the point value for a freshly displayed question.
func drawQuestionValue() int {
	if rand.Intn(2) == 0 {
		return 5
	}
	return 10
}
